package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/smartshelf/inventory-system/docs"
	"github.com/smartshelf/inventory-system/internal/api/handler"
	"github.com/smartshelf/inventory-system/internal/api/middleware"
	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth     ports.AuthService
	Products ports.ProductService
	Sales    ports.SaleService
	Users    ports.UserService
	Forecast ports.ForecastService
}

// RouterConfig carries everything NewRouter needs.
type RouterConfig struct {
	Services     Services
	JWTSecret    string
	CORSOrigins  []string
	HealthChecks map[string]handler.DependencyCheck
	Logger       zerolog.Logger
	// DisableMetrics skips the Prometheus middleware; tests build many routers
	// and the default registry only accepts one registration per collector.
	DisableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			handler.HeaderIdempotencyKey,
		},
	}))
	if !cfg.DisableMetrics {
		e.Use(echoprometheus.NewMiddleware("smartshelf"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health checks (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(cfg.HealthChecks).Readiness)

	// --- API docs ---
	docs.SwaggerInfo.BasePath = "/api"
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s := cfg.Services
	authHandler := handler.NewAuthHandler(s.Auth)
	productHandler := handler.NewProductHandler(s.Products)
	saleHandler := handler.NewSaleHandler(s.Sales)
	userHandler := handler.NewUserHandler(s.Users)
	forecastHandler := handler.NewForecastHandler(s.Forecast)

	managers := middleware.RBAC(domain.RoleStoreManager, domain.RoleAdmin)
	admins := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.Roles...)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("", middleware.Auth(cfg.JWTSecret))
	secured.GET("/auth/me", authHandler.Me, anyRole)

	// --- Products ---
	secured.GET("/products", productHandler.List, anyRole)
	secured.GET("/products/:id", productHandler.Get, anyRole)
	secured.POST("/products", productHandler.Create, managers)
	secured.PUT("/products/:id", productHandler.Update, managers)
	secured.DELETE("/products/:id", productHandler.Delete, managers)

	// --- Sales ---
	secured.POST("/sales", saleHandler.Record, anyRole)
	secured.GET("/sales/report", saleHandler.Report, managers)

	// --- Forecast ---
	secured.GET("/forecast", forecastHandler.Get, managers)

	// --- Users ---
	secured.GET("/users", userHandler.List, admins)
	secured.PUT("/users/:id/promote", userHandler.Promote, admins)
	secured.PUT("/users/:id/demote", userHandler.Demote, admins)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
