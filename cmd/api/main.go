// @title           SmartShelf Inventory API
// @version         1.0
// @description     Inventory, sales and demand forecasting for SmartShelf stores.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/api"
	"github.com/smartshelf/inventory-system/internal/api/handler"
	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
	"github.com/smartshelf/inventory-system/internal/core/service"
	"github.com/smartshelf/inventory-system/internal/infrastructure/db/mongo"
	"github.com/smartshelf/inventory-system/internal/infrastructure/db/redis"
	"github.com/smartshelf/inventory-system/internal/pkg/config"
	"github.com/smartshelf/inventory-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "smartshelf-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	cache, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer cache.Close()

	auth := service.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.Admin.Email != "" {
		admin, created, err := auth.EnsureAdmin(ctx, ports.RegisterInput{Email: cfg.Admin.Email, Password: cfg.Admin.Password})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info().Str("email", admin.Email).Msg("bootstrap admin created")
		} else if admin.Role != domain.RoleAdmin {
			log.Warn().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("bootstrap admin email belongs to a non-admin account")
		}
	}

	e := api.NewRouter(api.RouterConfig{
		Services: api.Services{
			Auth:     auth,
			Products: service.NewProductService(store.Products, cache.Forecasts, log),
			Sales:    service.NewSaleService(store.Products, store.Sales, cache.Replays, cache.Forecasts, log),
			Users:    service.NewUserService(store.Users, log),
			Forecast: service.NewForecastService(store.Products, store.Sales, cache.Forecasts, log),
		},
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": store.Ping,
			"redis":   cache.Ping,
		},
		Logger: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
