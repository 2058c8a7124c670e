package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/recipehub/recipe-api/internal/api/handler"
	"github.com/recipehub/recipe-api/internal/api/metrics"
	"github.com/recipehub/recipe-api/internal/api/middleware"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

// Services are the use cases the router exposes.
type Services struct {
	Auth    ports.AuthService
	Recipes ports.RecipeService
	Users   ports.UserService
	Guard   middleware.Authenticator
}

// Options tune the router. The zero value serves the API only.
type Options struct {
	Logger zerolog.Logger
	// Registry receives the HTTP and application metrics and backs /metrics.
	// Nil disables metrics.
	Registry *prometheus.Registry
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	// StaticDir, when set, is served as a single-page frontend.
	StaticDir string
	// Docs mounts the Swagger UI under /swagger/*.
	Docs bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(opts.Logger))

	var m *metrics.Metrics
	if opts.Registry != nil {
		m = metrics.New(opts.Registry)
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "recipe_hub",
			Subsystem:  "http",
			Registerer: opts.Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: opts.Registry,
		}))
	}

	if opts.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  opts.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger/") || p == "/metrics"
			},
		}))
	}

	if opts.Docs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth, m)
	recipeHandler := handler.NewRecipeHandler(svc.Recipes, m)
	userHandler := handler.NewUserHandler(svc.Users)
	healthHandler := handler.NewHealthHandler(opts.Checks)

	requireAuth := middleware.RequireAuth(svc.Guard, m)
	optionalAuth := middleware.OptionalAuth(svc.Guard)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	api.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, requireAuth)
	auth.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	auth.POST("/verify-token", authHandler.VerifyToken, requireAuth)

	// --- Recipe routes ---
	recipes := api.Group("/recipes")
	recipes.GET("", recipeHandler.List, optionalAuth)
	recipes.POST("", recipeHandler.Create, requireAuth)
	recipes.GET("/my/recipes", recipeHandler.ListMine, requireAuth)
	recipes.GET("/user/:userId", recipeHandler.ListByUser)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PUT("/:id", recipeHandler.Update, requireAuth)
	recipes.DELETE("/:id", recipeHandler.Delete, requireAuth)

	// --- User routes ---
	users := api.Group("/users")
	users.GET("/profile/:username", userHandler.Profile)
	users.GET("/search", userHandler.Search)
	users.GET("/stats", userHandler.Stats)

	return e
}
