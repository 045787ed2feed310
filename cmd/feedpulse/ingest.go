package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/internal/log"
)

func ingestCmd() *cobra.Command {
	var (
		envFile string
		source  string
		topic   string
		count   int
		path    string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Pull records from a source into the store",
		Long: `Pull records from a source into the record store.

Sources:
  synthetic  Generated texts about --topic (default)
  dataset    Rows from a labeled sentiment CSV at --path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}

			logger := log.NewLogger(cfg)
			slogger := logger.Slog()

			client, err := feedpulse.New(clientOptions(cfg, slogger)...)
			if err != nil {
				return fmt.Errorf("create feedpulse client: %w", err)
			}
			defer func() {
				if err := client.Close(); err != nil {
					slogger.Error("failed to close feedpulse client", slog.Any("error", err))
				}
			}()

			result, err := client.Ingest.Run(cmd.Context(), service.IngestParams{
				Source: source,
				Topic:  topic,
				Count:  count,
				Path:   path,
			})
			if err != nil {
				return err
			}

			fmt.Printf("ingested %d records from %s\n", result.Inserted, result.Source)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&source, "source", "synthetic", "Ingest source: synthetic, dataset")
	cmd.Flags().StringVar(&topic, "topic", "", "Topic to tag records with")
	cmd.Flags().IntVar(&count, "count", 0, "Number of records to fetch (source default when 0)")
	cmd.Flags().StringVar(&path, "path", "", "CSV file path for the dataset source")

	return cmd
}
