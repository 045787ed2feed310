package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/domain/storage"
	"github.com/feedpulse/feedpulse/internal/config"
)

// LatestParams configures a latest-sentiment listing.
type LatestParams struct {
	Topic     string
	ModelName string
	Limit     int
	Offset    int
}

// StatsParams configures an aggregate query. ModelName is required so
// confidence scores from different models are never averaged together.
type StatsParams struct {
	ModelName string
	Topic     string
}

// ScoredRecord joins a record with its latest prediction. Unscored records
// appear with no prediction rather than being dropped from the listing.
type ScoredRecord struct {
	Record     record.Record
	Prediction *prediction.Prediction
}

// Analytics serves read-side joins over records and the prediction log.
// Derived views reduce the append-only log in memory with a latest-per-record
// pass; nothing here writes.
type Analytics struct {
	records     record.Store
	predictions prediction.Store
	logger      *slog.Logger
}

// NewAnalytics creates an Analytics service.
func NewAnalytics(records record.Store, predictions prediction.Store, logger *slog.Logger) *Analytics {
	return &Analytics{records: records, predictions: predictions, logger: logger}
}

// Latest returns records newest-first, each joined with its most recent
// prediction. ModelName restricts the join to one model; empty means the
// latest prediction across all models. Predictions are fetched with one
// bulk query for the whole page.
func (a *Analytics) Latest(ctx context.Context, params LatestParams) ([]ScoredRecord, error) {
	records, err := a.listRecords(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []ScoredRecord{}, nil
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID()
	}

	predictions, err := a.predictions.ForRecords(ctx, ids, params.ModelName)
	if err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}
	latest := prediction.LatestPerRecord(predictions)

	scored := make([]ScoredRecord, len(records))
	for i, rec := range records {
		scored[i] = ScoredRecord{Record: rec}
		if p, ok := latest[rec.ID()]; ok {
			scored[i].Prediction = &p
		}
	}
	return scored, nil
}

// Stats aggregates latest-per-record predictions for one model, optionally
// restricted to a topic.
func (a *Analytics) Stats(ctx context.Context, params StatsParams) (prediction.Stats, error) {
	if params.ModelName == "" {
		return prediction.Stats{}, fmt.Errorf("%w: model name is required for stats", prediction.ErrValidation)
	}

	rows, err := a.predictions.ForTopic(ctx, params.Topic, params.ModelName)
	if err != nil {
		return prediction.Stats{}, fmt.Errorf("load predictions: %w", err)
	}

	latest := prediction.LatestPerRecord(rows)
	return prediction.ComputeStats(params.ModelName, latest), nil
}

func (a *Analytics) listRecords(ctx context.Context, params LatestParams) ([]record.Record, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = config.DefaultListLimit
	}
	if limit > config.DefaultMaxListLimit {
		limit = config.DefaultMaxListLimit
	}

	options := record.OrderNewestFirst()
	options = append(options,
		storage.WithLimit(limit),
		storage.WithOffset(params.Offset),
	)
	if params.Topic != "" {
		options = append(options, record.WithTopic(params.Topic))
	}
	return a.records.Find(ctx, options...)
}
