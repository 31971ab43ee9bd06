package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/eventsplanner/events-api/internal/config"
	"github.com/eventsplanner/events-api/internal/domain"
	"github.com/eventsplanner/events-api/internal/graph"
	"github.com/eventsplanner/events-api/internal/handler"
	"github.com/eventsplanner/events-api/internal/repository/mongodb"
	"github.com/eventsplanner/events-api/internal/repository/sqlite"
	"github.com/eventsplanner/events-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, events, users, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to prepare store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("connected to store", "driver", cfg.StoreDriver)

	schema, err := graph.NewSchema(
		service.NewEventService(events),
		service.NewUserService(users, cfg.BcryptCost),
	)
	if err != nil {
		slog.Error("failed to build schema", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := handler.NewMetrics(reg)

	var limiter *service.RateLimiter
	if cfg.RateLimitEnabled() {
		limiter = service.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, schema, db, metrics, limiter)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(config.Port),
		Handler:           handler.SecurityHeaders(handler.RequestLogger(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", "http://localhost"+srv.Addr+"/graphql")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore connects the configured backend and returns its repositories.
func openStore(ctx context.Context, cfg config.Config) (domain.Database, domain.EventRepository, domain.UserRepository, error) {
	if cfg.StoreDriver == config.DriverSQLite {
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db.Events(), db.Users(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	slog.Info("connecting to mongodb", "uri", cfg.Redacted())
	db, err := mongodb.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, db.Events(), db.Users(), nil
}
