// Package main is the entry point for the feedpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feedpulse/feedpulse/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedpulse",
		Short: "Feedpulse sentiment pipeline",
		Long:  `Feedpulse ingests short text records, scores them for sentiment with pluggable classifiers, and serves latest-sentiment views and aggregates over HTTP.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(scoreCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
