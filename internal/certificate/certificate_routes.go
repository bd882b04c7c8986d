package certificate

import (
	"github.com/Berghsen/timeline/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	certs := r.Group("/certificates")
	certs.Use(middleware.AuthMiddleware())
	certs.Use(middleware.ContextLogger(logger))
	{
		certs.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		if redisClient != nil {
			certs.POST("", middleware.RateLimitByUser(0.5, 2), middleware.Idempotency(redisClient), handler.Upload)
		} else {
			certs.POST("", middleware.RateLimitByUser(0.5, 2), handler.Upload)
		}
		certs.GET("/:id/download", middleware.RateLimitByUser(1, 5), handler.Download)
		certs.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), handler.Delete)

		admin := certs.Group("/employees/:userId")
		admin.Use(middleware.RoleMiddleware(middleware.RoleAdmin))
		{
			admin.GET("", middleware.RateLimitByUser(3, 10), handler.ListForEmployee)
		}
	}
}
