package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tiendita-app/tiendita/internal/adapter/api"
	"github.com/tiendita-app/tiendita/internal/adapter/metrics"
	"github.com/tiendita-app/tiendita/internal/adapter/repository/postgres"
	redisrepo "github.com/tiendita-app/tiendita/internal/adapter/repository/redis"
	"github.com/tiendita-app/tiendita/internal/pkg/config"
	"github.com/tiendita-app/tiendita/internal/pkg/logger"
	"github.com/tiendita-app/tiendita/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewStoreMetrics()

	// --- Start Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database and Redis Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		logger.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("could not connect to redis, order listings will skip the cache", "error", err)
	}
	defer redisClient.Close()

	// --- Initialize Repositories ---
	tenantRepo := postgres.NewTenantRepository(db, logger, cfg.TenantCacheTTL, m)
	userRepo := postgres.NewUserRepository(db, logger)
	productRepo := postgres.NewProductRepository(db, logger)
	orderRepo := postgres.NewOrderRepository(db, logger)
	orderCache := redisrepo.NewOrderCache(redisClient, logger, cfg.OrderCacheTTL)

	// --- Initialize Use Cases ---
	authService := usecase.NewAuthService(userRepo, cfg.TokenSecret, cfg.TokenExpiry)
	orderService := usecase.NewOrderService(orderRepo, orderCache, logger, m)

	// --- Initialize API Server ---
	router := api.NewRouter(api.Deps{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Tenants:  tenantRepo,
		Products: productRepo,
		Auth:     authService,
		Orders:   orderService,
	})

	apiServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting api server", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
