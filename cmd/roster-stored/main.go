package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/celerix-dev/celerix-roster/internal/api"
	"github.com/celerix-dev/celerix-roster/internal/config"
	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/internal/logging"
	"github.com/celerix-dev/celerix-roster/internal/metrics"
	"github.com/celerix-dev/celerix-roster/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load(os.Getenv("ROSTER_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Log.Format == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Seed the in-memory store
	var storeOpts []engine.Option
	if cfg.Users.AssignIDs {
		storeOpts = append(storeOpts, engine.WithAssignedIDs())
	}
	store := engine.NewMemStore(nil, storeOpts...)
	if err := engine.Seed(store, cfg.Seed.Users); err != nil {
		logger.Fatal("Failed to seed store", zap.Error(err))
	}
	logger.Info("Store ready", zap.Int("users", store.Len()), zap.String("status_time", store.GetStatus().Time))

	// 3. Services and handler
	policy, err := cfg.EmptyUsersPolicy()
	if err != nil {
		logger.Fatal("Invalid users.empty_policy", zap.Error(err))
	}
	emptyStatus, err := cfg.EmptyUsersStatus()
	if err != nil {
		logger.Fatal("Invalid users.empty_status", zap.Error(err))
	}
	mismatch, err := cfg.MethodMismatch()
	if err != nil {
		logger.Fatal("Invalid routing.method_mismatch", zap.Error(err))
	}
	validator, err := service.NewValidator(cfg.Users.Validation)
	if err != nil {
		logger.Fatal("Invalid users.validation", zap.Error(err))
	}

	handler := &api.Handler{
		Users:      service.NewUsers(store, policy, validator),
		Status:     service.NewStatus(store),
		EmptyUsers: emptyStatus,
		Logger:     logger,
	}

	// 4. Metrics on their own listener, away from the routing table
	var m *metrics.Metrics
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		m.WatchUsers(store.Len)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			logger.Info("Metrics listening", zap.String("addr", cfg.Metrics.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// 5. HTTP API
	r := api.NewEngine(api.EngineConfig{
		Controller:     handler,
		Router:         api.NewRouter(mismatch),
		Logger:         logger,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logger.Info("Server running", zap.String("addr", cfg.HTTP.Addr), zap.String("method_mismatch", string(mismatch)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 6. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Error("Metrics shutdown failed", zap.Error(err))
		}
	}
	logger.Info("Stopped")
}
