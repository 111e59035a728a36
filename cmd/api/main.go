package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vitalia-ro/wellness-ai-platform/internal/api/router"
	appconfig "github.com/vitalia-ro/wellness-ai-platform/internal/config"
	"github.com/vitalia-ro/wellness-ai-platform/internal/observability/metrics"
	"github.com/vitalia-ro/wellness-ai-platform/internal/personalization"
	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
	"github.com/vitalia-ro/wellness-ai-platform/pkg/logging"
)

func main() {
	// Load .env in local development; ignored when the file is absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting wellness-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"profile_store", cfg.ProfileStore,
	)

	repo, cleanup, err := buildRepository(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize profile store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	personalizationMetrics := metrics.NewPersonalizationMetrics(nil)
	service := personalization.NewService(profile.WithTimeout(repo, cfg.StoreTimeout), logger, personalizationMetrics)
	handler := personalization.NewHandler(service, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		Personalization:    handler,
		MetricsHandler:     promhttp.Handler(),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildRepository wires the configured profile store backend. The returned
// cleanup closes backend connections and is safe to call once.
func buildRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (profile.Repository, func(), error) {
	switch cfg.ProfileStore {
	case "memory", "":
		logger.Info("using in-memory profile store; profiles will not survive restarts")
		return profile.NewInMemoryRepository(), func() {}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("PROFILE_STORE=postgres requires DATABASE_URL")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		return profile.NewPostgresRepository(pool), pool.Close, nil

	case "redis":
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return profile.NewRedisRepository(client, nil), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown PROFILE_STORE %q (expected memory, postgres, or redis)", cfg.ProfileStore)
	}
}
