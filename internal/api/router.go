package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nusapress/articles-api/docs"
	"github.com/nusapress/articles-api/internal/api/handler"
	"github.com/nusapress/articles-api/internal/api/middleware"
	"github.com/nusapress/articles-api/internal/core/ports"
	"github.com/nusapress/articles-api/internal/core/service"
)

// RouterConfig bundles the dependencies needed to wire all routes.
type RouterConfig struct {
	Tokens    *service.TokenManager
	Users     ports.UserRepository
	Auth      *handler.AuthHandler
	Articles  *handler.ArticleHandler
	Docs      *handler.DocsHandler
	Health    *handler.HealthHandler
	Readiness *handler.ReadinessHandler
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("articles"))
	// Identity resolution runs on every request and never rejects one;
	// route handlers decide whether anonymous access is acceptable.
	e.Use(middleware.Identity(cfg.Tokens, cfg.Users))

	// --- Docs & introspection ---
	e.GET("/", cfg.Docs.Root)
	e.GET("/test-auth", cfg.Docs.TestAuth)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Articles ---
	e.GET("/articles", cfg.Articles.List)
	e.GET("/articles/:id", cfg.Articles.Get)
	e.POST("/articles", cfg.Articles.Create)
	e.PUT("/articles/:id", cfg.Articles.Update)
	e.DELETE("/articles/:id", cfg.Articles.Delete)
	e.GET("/articles-admin", cfg.Articles.ListAll)

	// --- Auth ---
	e.POST("/auth/register", cfg.Auth.Register)
	e.POST("/auth/login", cfg.Auth.Login)
	e.GET("/profile", cfg.Auth.Profile)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", cfg.Health.Liveness)
	e.GET("/health/ready", cfg.Readiness.Readiness)

	return e
}
