package leave

import (
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	{
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "submit"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/me", middleware.RateLimitByUser(5, 20), handler.GetMine)
		leaves.GET("/upcoming", middleware.RateLimitByUser(5, 20), handler.GetUpcoming)
		leaves.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read_all"),
			handler.GetAll,
		)
		leaves.POST("/bulk-decision",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide),
			handler.BulkDecide,
		)

		// ownership is checked by the service
		leaves.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetById)
		leaves.PUT("/:id", middleware.RateLimitByUser(1, 5), handler.Update)
		leaves.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)
		leaves.PUT("/:id/cancel", middleware.RateLimitByUser(1, 5), handler.Cancel)
		leaves.PUT("/:id/decision",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide),
			handler.Decide,
		)
	}
}
