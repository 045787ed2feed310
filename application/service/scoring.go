package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/domain/storage"
	"github.com/feedpulse/feedpulse/internal/config"
)

// ScoreParams configures one scoring pass.
type ScoreParams struct {
	// ModelName selects the classifier. Empty means the default model.
	ModelName string
	// Topic restricts candidates to one topic. Empty means all topics.
	Topic string
	// SinceRecordID restricts candidates to records with a larger ID.
	SinceRecordID int64
	// SinceTime restricts candidates to records ingested after this time.
	SinceTime time.Time
	// Limit caps candidates per pass. Zero means the configured default.
	Limit int
}

// ScoreReport summarizes one scoring pass.
type ScoreReport struct {
	ModelName  string
	Candidates int
	Scored     int
	Skipped    int
}

// Scoring runs incremental classification passes. A pass selects records
// the model has not scored yet, oldest first, classifies each, and appends
// one prediction per success. Passes for the same model are serialized so
// two concurrent passes cannot double-score a record; different models
// proceed independently.
type Scoring struct {
	records     record.Store
	predictions prediction.Store
	registry    *classify.Registry
	logger      *slog.Logger

	mu     sync.Mutex
	passMu map[string]*sync.Mutex
}

// NewScoring creates a Scoring service.
func NewScoring(
	records record.Store,
	predictions prediction.Store,
	registry *classify.Registry,
	logger *slog.Logger,
) *Scoring {
	return &Scoring{
		records:     records,
		predictions: predictions,
		registry:    registry,
		logger:      logger,
		passMu:      make(map[string]*sync.Mutex),
	}
}

// modelMutex returns the pass mutex for a model, creating it on first use.
func (s *Scoring) modelMutex(modelName string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.passMu[modelName]
	if !ok {
		m = &sync.Mutex{}
		s.passMu[modelName] = m
	}
	return m
}

// Run executes one scoring pass. If the classifier is unavailable the pass
// stops before touching any record and returns classify.ErrUnavailable. A
// failure to append one prediction skips that record and continues; the
// record stays unscored and a later pass picks it up again. On context
// cancellation the pass returns early with the partial report.
func (s *Scoring) Run(ctx context.Context, params ScoreParams) (ScoreReport, error) {
	classifier, err := s.resolveClassifier(params.ModelName)
	if err != nil {
		return ScoreReport{ModelName: params.ModelName}, err
	}
	modelName := classifier.ModelName()
	report := ScoreReport{ModelName: modelName}

	passMu := s.modelMutex(modelName)
	passMu.Lock()
	defer passMu.Unlock()

	candidates, err := s.records.FindUnscored(ctx, modelName, s.candidateOptions(params)...)
	if err != nil {
		return report, fmt.Errorf("select candidates: %w", err)
	}
	report.Candidates = len(candidates)

	for _, rec := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := classifier.Classify(ctx, rec.Body())
		if err != nil {
			if errors.Is(err, classify.ErrUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			// Bad output for this one record. Skip it and move on.
			s.logger.Warn("classification failed",
				slog.Int64("record_id", rec.ID()),
				slog.String("model", modelName),
				slog.String("error", err.Error()),
			)
			report.Skipped++
			continue
		}

		pred, err := prediction.New(rec.ID(), modelName, result.Label(), result.Score())
		if err != nil {
			s.logger.Warn("invalid prediction",
				slog.Int64("record_id", rec.ID()),
				slog.String("error", err.Error()),
			)
			report.Skipped++
			continue
		}

		if _, err := s.predictions.Append(ctx, pred); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			s.logger.Warn("prediction append failed",
				slog.Int64("record_id", rec.ID()),
				slog.String("model", modelName),
				slog.String("error", err.Error()),
			)
			report.Skipped++
			continue
		}
		report.Scored++
	}

	s.logger.Info("scoring pass completed",
		slog.String("model", modelName),
		slog.Int("candidates", report.Candidates),
		slog.Int("scored", report.Scored),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

// candidateOptions builds the candidate query: oldest first, capped, with
// optional topic and watermark filters.
func (s *Scoring) candidateOptions(params ScoreParams) []storage.Option {
	limit := params.Limit
	if limit <= 0 {
		limit = config.DefaultScoreLimit
	}

	options := []storage.Option{storage.WithLimit(limit)}
	options = append(options, record.OrderOldestFirst()...)
	if params.Topic != "" {
		options = append(options, record.WithTopic(params.Topic))
	}
	if params.SinceRecordID > 0 {
		options = append(options, record.WithIDAfter(params.SinceRecordID))
	}
	if !params.SinceTime.IsZero() {
		options = append(options, record.WithIngestedAfter(params.SinceTime))
	}
	return options
}

// resolveClassifier looks up the classifier for a model name, falling back
// to the registry's sole entry when no name is given.
func (s *Scoring) resolveClassifier(modelName string) (classify.Classifier, error) {
	if modelName == "" {
		names := s.registry.ModelNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: no classifiers registered", ErrUnknownModel)
		}
		modelName = names[0]
	}

	classifier, ok := s.registry.Classifier(modelName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelName)
	}
	return classifier, nil
}

// Models returns the registered model names.
func (s *Scoring) Models() []string {
	return s.registry.ModelNames()
}
