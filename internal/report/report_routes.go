package report

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	reports := r.Group("/reports")
	reports.Use(
		middleware.RateLimitByUser(1, 5),
		middleware.RBACAuthorize(rbacService, "report", "read"),
	)
	{
		reports.GET("/leave-stats", handler.GetStats)
		reports.GET("/employee-summary", handler.GetEmployeeSummary)
		reports.GET("/department-summary", handler.GetDepartmentSummary)
	}
}
