package app

import (
	"habit_bot_backend/docs"
	"habit_bot_backend/internal/config"
	"habit_bot_backend/internal/middleware"
	"habit_bot_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需密钥）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 机器人前端调用的接口，携带共享密钥
	api := router.Group("/api")
	api.Use(middleware.BotAuthMiddleware(cfg))
	{
		api.POST("/habits", c.habit.CreateHabit)
		api.GET("/habits", c.habit.ListHabits)
		api.PUT("/habits/:id", c.habit.RenameHabit)
		api.DELETE("/habits/:id", c.habit.RequestDeleteHabit)
		api.POST("/habits/:id/logs", c.habit.MarkHabit)
		api.GET("/habits/:id/streak", c.habit.GetStreak)

		api.GET("/stats", c.stats.GetStats)
		api.POST("/export", c.stats.Export)

		api.PUT("/reminder", c.reminder.SetReminder)
		api.GET("/reminder", c.reminder.GetReminder)
		api.DELETE("/reminder", c.reminder.ClearReminder)

		api.POST("/reset", c.confirmation.RequestReset)
		api.POST("/confirm", c.confirmation.Confirm)
	}
}
