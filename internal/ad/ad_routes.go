package ad

import (
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /ads. bulkGuard (idempotency) wraps the bulk endpoints when non-nil.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, bulkGuard gin.HandlerFunc) {
	authorize := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, rbac.ResourceAd, action)
	}
	guarded := func(action string, h gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{authorize(action)}
		if bulkGuard != nil {
			chain = append(chain, bulkGuard)
		}
		return append(chain, h)
	}

	ads := r.Group("/ads")
	{
		ads.POST("", middleware.RateLimitByUser(1, 5), authorize(rbac.ActionCreate), handler.Create)
		ads.GET("", authorize(rbac.ActionRead), handler.List)
		ads.GET("/:id", authorize(rbac.ActionRead), handler.GetByID)
		ads.PUT("/:id", authorize(rbac.ActionUpdate), handler.Update)

		ads.POST("/:id/submit", authorize(rbac.ActionSubmit), handler.Submit)
		ads.POST("/:id/approve", authorize(rbac.ActionApprove), handler.Approve)
		ads.POST("/:id/reject", authorize(rbac.ActionReject), handler.Reject)
		ads.POST("/:id/archive", authorize(rbac.ActionArchive), handler.Archive)

		ads.POST("/bulk/approve", guarded(rbac.ActionApprove, handler.BulkApprove)...)
		ads.POST("/bulk/reject", guarded(rbac.ActionReject, handler.BulkReject)...)
	}
}
