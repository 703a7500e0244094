package balance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	balances := r.Group("/balances")
	{
		balances.GET("/me",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "balance", "read_own"),
			handler.GetMine,
		)

		// ownership is checked by the service so staff may read their own row
		balances.GET("/:employee_id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "balance", "read_own"),
			handler.GetByEmployee,
		)

		balances.PUT("/:employee_id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "balance", "manage"),
			handler.Set,
		)
	}
}
