package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"bookreco-backend/config"
	"bookreco-backend/controllers"
	"bookreco-backend/services/catalog"
	"bookreco-backend/services/similarity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)
	logger.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if err := catalog.Migrate(db); err != nil {
		return err
	}

	store := catalog.NewGormStore(db)
	seeded, err := store.SeedIfEmpty(ctx, catalog.SampleBooks())
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("Seeded empty catalog", zap.Int("books", seeded))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.Driver),
	)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: controllers.NewRouter(controllers.Deps{
			Store:          store,
			Ranker:         similarity.NewEngine(),
			DB:             sqlDB,
			Logger:         logger,
			Registry:       registry,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Limit:          cfg.Recommend.Limit,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
