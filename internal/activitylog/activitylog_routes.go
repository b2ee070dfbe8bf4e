package activitylog

import (
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	logs := r.Group("/activity-logs")
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceActivityLog, rbac.ActionRead), handler.List)
		logs.GET("/export", middleware.RBACAuthorize(rbacService, rbac.ResourceActivityLog, rbac.ActionExport), handler.Export)
	}
}
