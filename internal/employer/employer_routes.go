package employer

import (
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /employers. bulkGuard (idempotency) wraps the bulk
// endpoints when non-nil.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, bulkGuard gin.HandlerFunc) {
	authorize := func(resource, action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, resource, action)
	}
	guarded := func(action string, h gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{authorize(rbac.ResourceEmployer, action)}
		if bulkGuard != nil {
			chain = append(chain, bulkGuard)
		}
		return append(chain, h)
	}

	employers := r.Group("/employers")
	{
		employers.POST("", middleware.RateLimitByUser(0.2, 2), authorize(rbac.ResourceEmployer, rbac.ActionCreate), handler.Register)
		employers.GET("", authorize(rbac.ResourceEmployer, rbac.ActionRead), handler.List)
		employers.GET("/:id", authorize(rbac.ResourceEmployer, rbac.ActionRead), handler.GetByID)

		employers.POST("/:id/approve", authorize(rbac.ResourceEmployer, rbac.ActionApprove), handler.Approve)
		employers.POST("/:id/reject", authorize(rbac.ResourceEmployer, rbac.ActionReject), handler.Reject)
		employers.POST("/:id/block", authorize(rbac.ResourceEmployer, rbac.ActionBlock), handler.Block)
		employers.POST("/:id/unblock", authorize(rbac.ResourceEmployer, rbac.ActionUnblock), handler.Unblock)

		employers.POST("/bulk/approve", guarded(rbac.ActionApprove, handler.BulkApprove)...)
		employers.POST("/bulk/reject", guarded(rbac.ActionReject, handler.BulkReject)...)

		employers.POST("/:id/companies", authorize(rbac.ResourceCompany, rbac.ActionCreate), handler.AddCompany)
		employers.GET("/:id/companies", authorize(rbac.ResourceCompany, rbac.ActionRead), handler.ListCompanies)
	}
}
