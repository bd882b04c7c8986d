package profile

import (
	"github.com/Berghsen/timeline/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	profiles.Use(middleware.ContextLogger(logger))
	{
		profiles.GET("/me",
			middleware.RateLimitByUser(3, 10),
			handler.GetMe,
		)
		profiles.PUT("/me/name",
			middleware.RateLimitByUser(0.5, 2),
			handler.UpdateName,
		)

		admin := profiles.Group("")
		admin.Use(middleware.RoleMiddleware(middleware.RoleAdmin))
		{
			admin.GET("/employees",
				middleware.RateLimitByUser(3, 10),
				handler.ListEmployees,
			)
			admin.PUT("/:userId/travel-time",
				middleware.RateLimitByUser(0.5, 2),
				handler.UpdateTravelTime,
			)
		}
	}
}
