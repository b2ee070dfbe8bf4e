package rbac

import (
	"go-jobmarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be behind AuthMiddleware already.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/me/permissions", handler.MyPermissions)
	r.POST("/rbac/enforce", middleware.RoleMiddleware(RoleAdminOnly...), handler.Enforce)
}
