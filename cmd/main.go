package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "popup-ads/internal/adapter/http"
	"popup-ads/internal/adapter/memory"
	"popup-ads/internal/adapter/metrics"
	"popup-ads/internal/adapter/postgres"
	"popup-ads/internal/adapter/usecase"
	"popup-ads/internal/config"
	"popup-ads/internal/config/configs"
	"popup-ads/internal/core/port"
	"popup-ads/internal/db"
)

// main is the entry point of the popup delivery service. Configuration is
// read from the environment (and .env when present); the subcommands
// serve the HTTP API, apply migrations or seed demo campaigns.
func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "popup-ads",
		Short:         "Targeted popup advertisement delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(), migrateCommand(), seedCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, cfg.Log.NewLogger(os.Stdout), nil
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg, logger)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			previous, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return err
			}
			logger.Info("migrations applied successfully", slog.Uint64("previous_version", uint64(previous)))
			return nil
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo campaigns into PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := db.NewPostgresPool(cmd.Context(), cfg.Psql)
			if err != nil {
				return err
			}
			defer pool.Close()

			campaigns := db.DemoCampaigns()
			if err = db.Seed(cmd.Context(), pool, campaigns); err != nil {
				return err
			}
			logger.Info("demo campaigns seeded", slog.Int("campaigns", len(campaigns)))
			return nil
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var (
		repo     port.CampaignRepository
		settings port.SettingsRepository
	)
	switch cfg.Storage.Driver {
	case configs.StoragePostgres:
		if cfg.Psql.RunMigrations {
			if _, err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
			} else {
				logger.Info("migrations applied successfully")
			}
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		defer pool.Close()
		repo = postgres.NewCampaignRepository(pool)
		settings = postgres.NewSettingsRepository(pool)
	default:
		store := memory.NewCampaignStore()
		if cfg.Storage.Seed {
			for _, c := range db.DemoCampaigns() {
				store.Put(c)
			}
		}
		repo = store
		settings = memory.NewSettingsStore()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := usecase.NewEngine(repo, settings, usecase.Config{
		DefaultCooldown: cfg.Delivery.DefaultCooldown,
		Selector: usecase.SelectorConfig{
			UnlimitedCapacity: cfg.Delivery.UnlimitedCapacity,
			TargetingBoost:    cfg.Delivery.TargetingBoost,
		},
		Seed:           cfg.Delivery.RandomSeed,
		SessionIdleTTL: cfg.Delivery.SessionIdleTTL,
	}, logger, usecase.WithMetrics(metrics.NewPrometheus(reg)))
	go engine.RunEviction(ctx, cfg.Delivery.SessionSweepInterval)

	handler := httpadapter.NewHandler(engine, logger, cfg.HTTP, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("storage", cfg.Storage.Driver),
			slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}
