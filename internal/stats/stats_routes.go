package stats

import (
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.GET("/dashboard/stats", middleware.RBACAuthorize(rbacService, rbac.ResourceStats, rbac.ActionRead), handler.Get)
}
