// Package ingest provides record sources that feed the record store.
package ingest

import (
	"context"

	"github.com/feedpulse/feedpulse/domain/record"
)

// Params controls what a source fetches.
type Params struct {
	// Topic tags the fetched records.
	Topic string
	// Count caps how many records the source produces.
	Count int
	// Path points at an on-disk input for file-backed sources.
	Path string
}

// Source produces records ready for persistence. Implementations do not
// persist anything themselves.
type Source interface {
	Name() string
	Fetch(ctx context.Context, params Params) ([]record.Record, error)
}
