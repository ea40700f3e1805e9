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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	adapthttp "bmitracker/internal/adapter/http"
	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/adapter/postgres"
	"bmitracker/internal/adapter/sqlite"
	"bmitracker/internal/app"
	"bmitracker/internal/config"
	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
	"bmitracker/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bmitracker: %v\n", err)
		os.Exit(1)
	}
}

// store is what every storage adapter provides.
type store interface {
	domain.UserRepository
	domain.ObservationRepository
	Close() error
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.StoreMemory:
		return memory.New(), nil
	default:
		db, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	var rec metrics.Recorder = metrics.Nop{}
	var opts []adapthttp.Option
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		c := metrics.NewCollector(reg)
		rec = c
		opts = append(opts, adapthttp.WithMetrics(c, metrics.Handler(reg)))
	}
	opts = append(opts, adapthttp.WithLogger(log))

	users := app.NewUserService(db, log.Named("users"), rec)
	history := app.NewHistoryService(db, log.Named("history"), rec)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      adapthttp.New(users, history, opts...).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
