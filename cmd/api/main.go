package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ddfriends/places/internal/adapters/http"
	natsadapter "github.com/ddfriends/places/internal/adapters/nats"
	"github.com/ddfriends/places/internal/adapters/postgres"
	"github.com/ddfriends/places/internal/adapters/valkey"
	"github.com/ddfriends/places/internal/adapters/verify"
	"github.com/ddfriends/places/internal/core/ports"
	"github.com/ddfriends/places/internal/core/usecases"
	"github.com/ddfriends/places/internal/pkg/config"
	"github.com/ddfriends/places/internal/pkg/logging"
	"github.com/ddfriends/places/internal/pkg/metrics"
	"github.com/ddfriends/places/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("places-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Refresh pool gauges in the background
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Cache (optional: the API degrades to uncached reads without it)
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS (optional: change events are best-effort)
	var events ports.EventPublisher
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
		events = publisher
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Verification oracle
	verifier := verify.New(cfg.Verifier.URL, cfg.Verifier.Timeout())

	// Repos and use cases
	locationRepo := postgres.NewLocationRepo(db)
	locationSvc := usecases.NewLocationService(locationRepo, cacheSvc, cfg.Search.MaxResults)
	mutationSvc := usecases.NewMutationService(locationRepo, verifier, events, cacheSvc)

	deps := &http.Dependencies{
		Locations:     locationSvc,
		Mutations:     mutationSvc,
		NATS:          natsConn,
		DB:            db,
		Cache:         cache,
		DefaultRadius: cfg.Search.DefaultRadius,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Places API",
		ErrorHandler: http.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
