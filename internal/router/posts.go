package router

import (
	"github.com/deppfellow/go-posts/internal/handler"
	"github.com/deppfellow/go-posts/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerPostRoutes(api *echo.Group, h *handler.PostHandler, auth *middleware.AuthMiddleware) {
	posts := api.Group("/posts")

	posts.GET("/test", h.Test)
	posts.GET("", h.ListPosts)
	posts.GET("/", h.ListPosts)
	posts.GET("/:id", h.GetPost)

	posts.POST("", h.CreatePost, auth.RequireAuth)
	posts.POST("/", h.CreatePost, auth.RequireAuth)
	posts.DELETE("/:id", h.DeletePost, auth.RequireAuth)
	posts.POST("/like/:id", h.LikePost, auth.RequireAuth)
	posts.POST("/unlike/:id", h.UnlikePost, auth.RequireAuth)
	posts.POST("/comment/:id", h.AddComment, auth.RequireAuth)
	posts.DELETE("/comment/:id/:comment_id", h.DeleteComment, auth.RequireAuth)
}
