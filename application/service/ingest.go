package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/infrastructure/ingest"
)

// IngestParams configures one ingest run.
type IngestParams struct {
	Source string
	Topic  string
	Count  int
	Path   string
}

// IngestResult reports what an ingest run persisted.
type IngestResult struct {
	Source    string
	Inserted  int
	RecordIDs []int64
}

// Ingest pulls records from a named source and appends them to the record
// store. Every fetched record is stored as a new row; the pipeline never
// rewrites what a source already delivered.
type Ingest struct {
	records record.Store
	sources map[string]ingest.Source
	logger  *slog.Logger
	mu      sync.RWMutex
}

// NewIngest creates an Ingest service.
func NewIngest(records record.Store, logger *slog.Logger) *Ingest {
	return &Ingest{
		records: records,
		sources: make(map[string]ingest.Source),
		logger:  logger,
	}
}

// RegisterSource makes a source available by name.
func (i *Ingest) RegisterSource(source ingest.Source) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sources[source.Name()] = source
}

// Sources returns the registered source names, sorted.
func (i *Ingest) Sources() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := make([]string, 0, len(i.sources))
	for name := range i.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run fetches from the named source and persists each record. A failed save
// aborts the run; records saved before the failure stay stored.
func (i *Ingest) Run(ctx context.Context, params IngestParams) (IngestResult, error) {
	i.mu.RLock()
	source, ok := i.sources[params.Source]
	i.mu.RUnlock()
	if !ok {
		return IngestResult{}, fmt.Errorf("%w: %q", ErrUnknownSource, params.Source)
	}

	fetched, err := source.Fetch(ctx, ingest.Params{
		Topic: params.Topic,
		Count: params.Count,
		Path:  params.Path,
	})
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetch from %s: %w", params.Source, err)
	}

	result := IngestResult{Source: params.Source, RecordIDs: make([]int64, 0, len(fetched))}
	for _, rec := range fetched {
		saved, err := i.records.Save(ctx, rec)
		if err != nil {
			return result, fmt.Errorf("save record: %w", err)
		}
		result.Inserted++
		result.RecordIDs = append(result.RecordIDs, saved.ID())
	}

	i.logger.Info("ingest completed",
		slog.String("source", params.Source),
		slog.String("topic", params.Topic),
		slog.Int("inserted", result.Inserted),
	)
	return result, nil
}
