package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicops/pt-followup/internal/api/router"
	"github.com/clinicops/pt-followup/internal/app/bootstrap"
	appconfig "github.com/clinicops/pt-followup/internal/config"
	"github.com/clinicops/pt-followup/internal/gateway"
	"github.com/clinicops/pt-followup/internal/http/handlers"
	"github.com/clinicops/pt-followup/internal/observability/metrics"
	"github.com/clinicops/pt-followup/internal/visits"
	"github.com/clinicops/pt-followup/pkg/logging"
)

func main() {
	// Load .env in development; ignored when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pt-followup API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics registry
	promRegistry := prometheus.NewRegistry()
	visitMetrics := metrics.NewVisitMetrics(promRegistry)

	// Redis-backed fallback cache (optional)
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	var cache *gateway.Cache
	if redisClient != nil {
		defer redisClient.Close()
		cache = gateway.NewCache(redisClient)
	}

	// Persistence gateway: spreadsheet when configured, local cache otherwise
	gw := bootstrap.BuildGateway(ctx, cfg, cache, logger)

	// Visit service with startup load
	service := visits.NewService(visits.NewStore(), gw, cache, logger, visitMetrics)
	if source, err := service.Load(ctx); err != nil {
		logger.Warn("initial visit load failed, starting empty", "error", err)
	} else {
		logger.Info("visits loaded", "source", source)
	}

	visitsHandler := handlers.NewVisitsHandler(service, logger, cfg.CalendarYear, cfg.SuggestionLimit)

	r := router.New(&router.Config{
		Logger:             logger,
		Visits:             visitsHandler,
		MetricsHandler:     promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		WriteRateLimit:     5,
		WriteBurst:         10,
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
