// Package router builds the echo instance: global middleware in order,
// health and docs routes, and the /api/posts group.
package router

import (
	"github.com/deppfellow/go-posts/internal/handler"
	"github.com/deppfellow/go-posts/internal/middleware"
	"github.com/deppfellow/go-posts/internal/server"
	"github.com/deppfellow/go-posts/static"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limiter(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.Middleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	router.GET("/status", h.Health.CheckHealth)
	router.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	router.StaticFS("/static", static.Files)

	api := router.Group("/api")
	registerPostRoutes(api, h.Post, middlewares.Auth)

	return router
}
