package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/seoeunjin/api/internal/app"
	"github.com/seoeunjin/api/internal/config"
	"github.com/seoeunjin/api/internal/observability/logger"
)

func main() {
	var (
		flagConfigPath string
		flagEnvFile    string
	)

	root := &cobra.Command{
		Use:   "api",
		Short: "Social login API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagEnvFile != "" {
				// Missing .env is fine; env vars may come from the real environment.
				_ = godotenv.Load(flagEnvFile)
			}
		},
	}
	root.PersistentFlags().StringVar(&flagConfigPath, "config", envOr("CONFIG_PATH", "config.yaml"), "path to config.yaml")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "path to .env (loaded if present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfigPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfigPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" || cfg.Storage.DSN == "" {
				return fmt.Errorf("migrate: postgres driver and DATABASE_URL required")
			}
			return migrate(cmd.Context(), cfg.Storage.DSN)
		},
	}

	root.AddCommand(serveCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "api",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", logger.String("addr", cfg.Server.Addr))
		return container.Server.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return container.Server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
