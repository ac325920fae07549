package router

import (
	"inkwell/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the JSON API. Everything under /api/posts sits
// behind the token gate; registration and login are public.
func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, postHandler *handlers.PostHandler, authRequired gin.HandlerFunc) {
	api := r.Group("/api")

	// Public routes
	api.POST("/users", authHandler.Register)
	api.POST("/users/login", authHandler.Login)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(authRequired)
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.GET("/posts", postHandler.List)
		authorized.GET("/posts/:id", postHandler.Detail)
		authorized.PATCH("/posts/:id", postHandler.Update)

		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.POST("/posts/:id/read", postHandler.MarkRead)
	}
}
