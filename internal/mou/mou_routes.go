package mou

import (
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	mous := r.Group("/mous")
	{
		mous.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionCreate), handler.Create)
		mous.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionRead), handler.GetByID)
		mous.POST("/:id/deactivate", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionDeactivate), handler.Deactivate)
		mous.POST("/:id/document", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionUpload), handler.UploadDocument)
	}

	r.GET("/employers/:id/mous", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionRead), handler.ListByEmployer)
	r.GET("/employers/:id/mou-status", middleware.RBACAuthorize(rbacService, rbac.ResourceMOU, rbac.ActionRead), handler.MouStatus)
}
