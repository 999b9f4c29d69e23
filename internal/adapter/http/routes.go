package http

import (
	"todolist/internal/adapter/http/handlers"
	"todolist/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface. The auth middleware is injected so
// tests can substitute a fixed principal.
func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, auth gin.HandlerFunc) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	tasks := api.Group("/tasks")
	tasks.Use(auth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/stats", taskHandler.GetTaskStats)
		tasks.PUT("/bulk", taskHandler.BulkUpdateTasks)
		tasks.DELETE("/bulk", taskHandler.BulkDeleteTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.PATCH("/:id/toggle", taskHandler.ToggleTask)
	}
}
