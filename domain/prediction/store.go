package prediction

import (
	"context"

	"github.com/feedpulse/feedpulse/domain/storage"
)

// Store persists the append-only prediction log. No update or delete exists;
// "current" sentiment is always derived by LatestPerRecord over appended rows.
type Store interface {
	// Append inserts a new prediction and returns it with the
	// store-assigned id and scored time populated. Returns ErrReferential
	// when the record id does not exist and ErrValidation when the label
	// or score is out of range.
	Append(ctx context.Context, p Prediction) (Prediction, error)

	// Find retrieves predictions matching the given options.
	Find(ctx context.Context, options ...storage.Option) ([]Prediction, error)

	// Count returns the number of prediction rows matching the options.
	Count(ctx context.Context, options ...storage.Option) (int64, error)

	// ForRecords retrieves, in a single query, every prediction for the
	// given record ids, optionally restricted to one model name (empty
	// string means all models). Callers reduce with LatestPerRecord.
	ForRecords(ctx context.Context, recordIDs []int64, modelName string) ([]Prediction, error)

	// ForTopic retrieves, in a single joined query, every prediction under
	// the given model whose record carries the topic (empty topic means all
	// records). Used by the stats aggregation.
	ForTopic(ctx context.Context, topic, modelName string) ([]Prediction, error)
}
