// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beniamp/orders-tracking/internal/api"
	"github.com/beniamp/orders-tracking/internal/cache"
	"github.com/beniamp/orders-tracking/internal/config"
	"github.com/beniamp/orders-tracking/internal/service"
	"github.com/beniamp/orders-tracking/internal/snapshot"
	"github.com/beniamp/orders-tracking/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load snapshots into memory; they are read-only for the process
	// lifetime and every request recomputes from them.
	orders, err := snapshot.LoadOrders(cfg.Snapshot.OrdersPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("path", cfg.Snapshot.OrdersPath).Msg("Failed to load orders snapshot")
	}
	logger.Log.Info().Int("rows", len(orders)).Str("path", cfg.Snapshot.OrdersPath).Msg("Loaded orders snapshot")

	stocks, err := snapshot.LoadStocks(cfg.Snapshot.StocksPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("path", cfg.Snapshot.StocksPath).Msg("Failed to load stocks snapshot")
	}
	logger.Log.Info().Int("rows", len(stocks)).Str("path", cfg.Snapshot.StocksPath).Msg("Loaded stocks snapshot")

	// Initialize cache
	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, falling back to noop")
		reportCache = cache.NewNoopReportCache()
	}

	// Cached reports derive from the snapshot a previous process loaded;
	// a fresh load makes them stale.
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
	if err := reportCache.InvalidateAll(flushCtx); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to invalidate stale report cache")
	}
	cancelFlush()

	// Initialize services
	orderTracking := service.NewOrderTrackingService(orders, reportCache)
	balance := service.NewBalanceService(orders, stocks, reportCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		OrderTracking: orderTracking,
		Balance:       balance,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
