package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/testivo/testimonial-system/internal/api/handler"
	"github.com/testivo/testimonial-system/internal/api/middleware"
	"github.com/testivo/testimonial-system/internal/core/service"
	mongodb "github.com/testivo/testimonial-system/internal/infrastructure/db/mongo"
	redisdb "github.com/testivo/testimonial-system/internal/infrastructure/db/redis"
	"github.com/testivo/testimonial-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(echoprometheus.NewMiddleware("testimonial"))

	// --- Dependencies ---
	adminRepo := mongodb.NewAdminRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	testimonialRepo := mongodb.NewTestimonialRepository(db)
	guard := redisdb.NewRedemptionGuard(rdb)

	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.SessionTTL, log)
	projectService := service.NewProjectService(projectRepo, tokenRepo, testimonialRepo, log)
	tokenService := service.NewTokenService(tokenRepo, projectRepo, testimonialRepo, guard, cfg.FrontendURL, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, projectRepo, log)
	publicService := service.NewPublicService(projectRepo, testimonialRepo, log)
	dashboardService := service.NewDashboardService(projectRepo, tokenRepo, testimonialRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	tokenHandler := handler.NewTokenHandler(tokenService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService)
	publicHandler := handler.NewPublicHandler(publicService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Admin routes ---
	admin := e.Group("/api/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)
	admin.GET("/me", authHandler.Me, authMW)
	admin.GET("/dashboard", dashboardHandler.Stats, authMW)

	projects := admin.Group("/projects", authMW)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Token routes ---
	tokens := e.Group("/api/tokens")
	tokens.GET("/validate/:token", tokenHandler.Validate) // public
	tokens.POST("/generate", tokenHandler.Generate, authMW)
	tokens.GET("", tokenHandler.List, authMW)
	tokens.GET("/project/:project_id", tokenHandler.ListByProject, authMW)
	tokens.DELETE("/:token_id", tokenHandler.Revoke, authMW)

	// --- Testimonial routes ---
	testimonials := e.Group("/api/testimonials")
	testimonials.POST("/submit", tokenHandler.Submit) // public redemption
	testimonials.GET("", testimonialHandler.List, authMW)
	testimonials.GET("/:id", testimonialHandler.Get, authMW)
	testimonials.PUT("/:id", testimonialHandler.Update, authMW)
	testimonials.DELETE("/:id", testimonialHandler.Delete, authMW)
	testimonials.POST("/:id/toggle-featured", testimonialHandler.ToggleFeatured, authMW)
	testimonials.POST("/:id/toggle-published", testimonialHandler.TogglePublished, authMW)

	// --- Public read API ---
	public := e.Group("/api/public")
	public.GET("/testimonials", publicHandler.Testimonials)
	public.GET("/testimonials/featured", publicHandler.Featured)
	public.GET("/projects", publicHandler.Projects)
	public.GET("/stats", publicHandler.Stats)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "testimonial system api",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return e
}
