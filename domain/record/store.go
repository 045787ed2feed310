package record

import (
	"context"

	"github.com/feedpulse/feedpulse/domain/storage"
)

// Store persists records. Inserts are append-only; the interface exposes no
// update or delete, which is how immutability is enforced.
type Store interface {
	// Save inserts a new record and returns it with the store-assigned
	// id and ingested time populated.
	Save(ctx context.Context, r Record) (Record, error)

	// Find retrieves records matching the given options.
	Find(ctx context.Context, options ...storage.Option) ([]Record, error)

	// FindOne retrieves a single record matching the given options.
	FindOne(ctx context.Context, options ...storage.Option) (Record, error)

	// Exists checks whether any record matches the given options.
	Exists(ctx context.Context, options ...storage.Option) (bool, error)

	// Count returns the number of records matching the given options.
	Count(ctx context.Context, options ...storage.Option) (int64, error)

	// FindUnscored retrieves records that have no prediction row under the
	// given model name, subject to any additional options. Each model tracks
	// its own unscored frontier: a record scored by one model remains a
	// candidate for every other.
	FindUnscored(ctx context.Context, modelName string, options ...storage.Option) ([]Record, error)
}
