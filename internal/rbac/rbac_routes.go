package rbac

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", middleware.RateLimitByUser(5, 20), handler.Enforce)
		group.GET("/permissions/me", handler.MyPermissions)
		group.POST("/reload",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(service, "rbac", "manage"),
			handler.Reload,
		)
	}
}
