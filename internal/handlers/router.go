package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/session"
)

// RegisterRoutes mounts the auth and todo endpoints on r. todoIdentity
// resolves the acting user for the /todos group.
func RegisterRoutes(r gin.IRouter, authHandler *AuthHandler, todoHandler *TodoHandler, binder session.Binder, todoIdentity gin.HandlerFunc) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/signout", authHandler.Signout)
		auth.GET("/me", middleware.RequireAuth(binder), authHandler.GetCurrentUser)
	}

	// Todo routes (protected)
	todos := r.Group("/todos")
	todos.Use(todoIdentity)
	{
		todos.GET("", todoHandler.ListTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.POST("/suggest", todoHandler.SuggestTodos)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}
}
