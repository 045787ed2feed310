package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/internal/log"
)

func scoreCmd() *cobra.Command {
	var (
		envFile string
		model   string
		topic   string
		sinceID int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Run one scoring pass",
		Long: `Run one scoring pass: classify records the model has not scored yet,
oldest first, and append the results to the prediction log. Running the
same pass twice adds nothing the second time.`,
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

			report, err := client.Scoring.Run(cmd.Context(), service.ScoreParams{
				ModelName:     model,
				Topic:         topic,
				SinceRecordID: sinceID,
				Limit:         limit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("model %s: %d candidates, %d scored, %d skipped\n",
				report.ModelName, report.Candidates, report.Scored, report.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default: first registered)")
	cmd.Flags().StringVar(&topic, "topic", "", "Restrict the pass to one topic")
	cmd.Flags().Int64Var(&sinceID, "since-id", 0, "Only consider records with a larger id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Candidates per pass (default from config)")

	return cmd
}
