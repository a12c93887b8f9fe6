package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/flowcrm/customer-system/docs"
	"github.com/flowcrm/customer-system/internal/api/handler"
	"github.com/flowcrm/customer-system/internal/api/middleware"
	"github.com/flowcrm/customer-system/internal/core/ports"
	"github.com/flowcrm/customer-system/internal/core/service"
	mongodb "github.com/flowcrm/customer-system/internal/infrastructure/db/mongo"
)

// RouterConfig carries everything NewRouter needs to assemble the service.
type RouterConfig struct {
	DB           *mongo.Database
	Redis        *redis.Client // nil when the memory session backend is in use
	Sessions     ports.SessionStore
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
	// StrictPasswords enables the strong-password rule on registration.
	StrictPasswords bool
	Logger          zerolog.Logger
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
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("customer_system"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(cfg.DB)
	customerRepo := mongodb.NewCustomerRepository(cfg.DB)

	var authOpts []service.AuthOption
	if cfg.StrictPasswords {
		authOpts = append(authOpts, service.WithStrictPasswords())
	}
	authService := service.NewAuthService(userRepo, cfg.Sessions, cfg.JWTSecret, cfg.SessionTTL, cfg.Logger, authOpts...)
	customerService := service.NewCustomerService(customerRepo, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookie)
	customerHandler := handler.NewCustomerHandler(customerService)
	dashboardHandler := handler.NewDashboardHandler(customerService)

	sessionAuth := middleware.Auth(authService, cfg.JWTSecret)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "customer-system"})
	})
	e.GET("/register", authHandler.RegisterStatus)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("", sessionAuth)
	authed.GET("/logout", authHandler.Logout)
	authed.GET("/dashboard", dashboardHandler.Summary)
	authed.GET("/customers", customerHandler.List)
	authed.GET("/customers/:id", customerHandler.Get)
	authed.POST("/customers", customerHandler.Create)
	authed.POST("/customers/:id", customerHandler.Update)
	authed.POST("/customers/:id/delete", customerHandler.Delete, middleware.AdminOnly())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
