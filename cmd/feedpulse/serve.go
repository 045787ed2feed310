package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/infrastructure/api"
	"github.com/feedpulse/feedpulse/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server and the background scoring loop.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                      Server host to bind to (default: 0.0.0.0)
  PORT                      Server port to listen on (default: 8080)
  DATA_DIR                  Data directory (default: ~/.feedpulse)
  DB_URL                    Database URL (default: sqlite:///{data_dir}/feedpulse.db)
  LOG_LEVEL                 Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                Log format: pretty, json (default: pretty)
  API_KEYS                  Comma-separated list of valid API keys
  MODEL_DIR                 Local model directory (default: {data_dir}/models)
  MODELS                    Comma-separated model names to expose
  LABEL_CONFIG              Path to a YAML label translation file

  OPENAI_API_KEY            Enable the remote classifier
  OPENAI_BASE_URL           Remote endpoint base URL
  OPENAI_MODEL              Chat model (default: gpt-4o-mini)

  SCORING_ENABLED           Run the background scoring loop (default: true)
  SCORING_INTERVAL_SECONDS  Delay between passes (default: 30)
  SCORING_LIMIT             Candidates per pass per model (default: 100)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars
	cfg = cfg.WithAddr(host, port)
	addr := cfg.Addr()

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	slogger.Info("starting feedpulse",
		slog.String("version", version),
		slog.String("addr", addr),
		slog.String("data_dir", cfg.DataDir()),
	)

	client, err := feedpulse.New(clientOptions(cfg, slogger)...)
	if err != nil {
		return fmt.Errorf("create feedpulse client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close feedpulse client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client, cfg.APIKeys())
	apiServer.MountRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client.StartWorker(ctx)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return apiServer.ListenAndServe(addr)
	})
	group.Go(func() error {
		<-ctx.Done()
		slogger.Info("shutting down server")
		return apiServer.Shutdown(context.Background())
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
