package timeentry

import (
	"github.com/Berghsen/timeline/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	entries.Use(middleware.ContextLogger(logger))
	{
		entries.GET("", middleware.RateLimitByUser(5, 20), handler.List)
		entries.GET("/summary/week", middleware.RateLimitByUser(3, 10), handler.WeekSummary)
		entries.GET("/summary/month", middleware.RateLimitByUser(3, 10), handler.MonthSummary)
		entries.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetByID)

		if redisClient != nil {
			entries.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(1, 5),
				handler.Create,
			)
		} else {
			entries.POST("", middleware.RateLimitByUser(1, 5), handler.Create)
		}
		entries.PUT("/:id", middleware.RateLimitByUser(1, 5), handler.Update)
		entries.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), handler.Delete)

		admin := entries.Group("/employees/:userId")
		admin.Use(middleware.RoleMiddleware(middleware.RoleAdmin))
		{
			admin.GET("", middleware.RateLimitByUser(3, 10), handler.ListForEmployee)
			admin.GET("/summary/week", middleware.RateLimitByUser(3, 10), handler.WeekSummary)
			admin.GET("/summary/month", middleware.RateLimitByUser(3, 10), handler.MonthSummary)
		}
	}
}
