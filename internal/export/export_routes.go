package export

import (
	"github.com/Berghsen/timeline/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	exports := r.Group("/exports")
	exports.Use(middleware.AuthMiddleware())
	exports.Use(middleware.ContextLogger(logger))
	{
		exports.GET("/week.pdf", middleware.RateLimitByUser(0.5, 2), handler.WeekPDF)
		exports.GET("/month.pdf", middleware.RateLimitByUser(0.5, 2), handler.MonthPDF)

		admin := exports.Group("/employees/:userId")
		admin.Use(middleware.RoleMiddleware(middleware.RoleAdmin))
		{
			admin.GET("/week.pdf", middleware.RateLimitByUser(0.5, 2), handler.WeekPDF)
			admin.GET("/month.pdf", middleware.RateLimitByUser(0.5, 2), handler.MonthPDF)
		}
	}
}
