package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/internal/config"
)

// Worker runs scoring passes on a timer. Each tick drains one batch per
// model; anything left over is picked up on the next tick. An empty models
// list means every registered model.
type Worker struct {
	scoring  *Scoring
	logger   *slog.Logger
	models   []string
	interval time.Duration
	limit    int
	enabled  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewWorker creates a scoring worker from config and dependencies.
func NewWorker(cfg config.ScoringConfig, models []string, scoring *Scoring, logger *slog.Logger) *Worker {
	return &Worker{
		scoring:  scoring,
		logger:   logger,
		models:   models,
		interval: cfg.Interval(),
		limit:    cfg.Limit(),
		enabled:  cfg.Enabled(),
	}
}

// Start begins background scoring in a goroutine.
// If disabled, this is a no-op.
func (w *Worker) Start(ctx context.Context) {
	if !w.enabled {
		w.logger.Info("background scoring disabled")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Go(func() {
		w.run(ctx)
	})

	w.logger.Info("background scoring started", slog.Duration("interval", w.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	w.logger.Info("background scoring stopped")
}

func (w *Worker) run(ctx context.Context) {
	// Score immediately on startup
	w.scoreAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scoreAll(ctx)
		}
	}
}

func (w *Worker) scoreAll(ctx context.Context) {
	models := w.models
	if len(models) == 0 {
		models = w.scoring.Models()
	}
	for _, modelName := range models {
		if ctx.Err() != nil {
			return
		}

		report, err := w.scoring.Run(ctx, ScoreParams{
			ModelName: modelName,
			Limit:     w.limit,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, classify.ErrUnavailable) {
				// Model files missing or endpoint down. Try again next tick.
				w.logger.Debug("classifier unavailable",
					slog.String("model", modelName),
					slog.String("error", err.Error()),
				)
				continue
			}
			w.logger.Error("background scoring pass failed",
				slog.String("model", modelName),
				slog.String("error", err.Error()),
			)
			continue
		}

		if report.Scored > 0 || report.Skipped > 0 {
			w.logger.Debug("background scoring pass",
				slog.String("model", modelName),
				slog.Int("scored", report.Scored),
				slog.Int("skipped", report.Skipped),
			)
		}
	}
}
