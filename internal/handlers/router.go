package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/middleware"
	"github.com/tasklister/tasklister-api/internal/services"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	InstanceService *services.InstanceService
	AuthService     *services.AuthService
	TaskService     *services.TaskService
	Verifier        middleware.SessionVerifier
	Logger          *slog.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(deps.Logger))

	instanceHandler := NewInstanceHandler(deps.InstanceService)
	authHandler := NewAuthHandler(deps.AuthService)
	taskHandler := NewTaskHandler(deps.TaskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task list API is running",
		})
	})

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/register-instance", instanceHandler.RegisterInstance)
		api.GET("/check-instance/:slug", instanceHandler.CheckInstance)
		api.POST("/login/admin", authHandler.LoginAdmin)
		api.POST("/login/user", authHandler.LoginUser)

		api.GET("/session", middleware.RequireAuth(deps.Verifier), authHandler.CurrentSession)

		// Task routes (protected, scoped to one instance)
		tasks := api.Group("/:slug/tasks")
		tasks.Use(middleware.RequireAuth(deps.Verifier), middleware.RequireInstance(deps.InstanceService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id/take", taskHandler.TakeTask)
			tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
			tasks.PATCH("/:id/return", taskHandler.ReturnTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return r
}
