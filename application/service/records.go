package service

import (
	"context"
	"log/slog"

	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/domain/storage"
	"github.com/feedpulse/feedpulse/internal/config"
)

// ListParams configures a record listing.
type ListParams struct {
	Topic  string
	Limit  int
	Offset int
}

// Records provides read access to stored records.
type Records struct {
	store  record.Store
	logger *slog.Logger
}

// NewRecords creates a Records service.
func NewRecords(store record.Store, logger *slog.Logger) *Records {
	return &Records{store: store, logger: logger}
}

// List returns records newest-first, optionally filtered by topic. Limit is
// clamped to the configured maximum.
func (r *Records) List(ctx context.Context, params ListParams) ([]record.Record, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = config.DefaultListLimit
	}
	if limit > config.DefaultMaxListLimit {
		limit = config.DefaultMaxListLimit
	}

	options := []storage.Option{
		storage.WithLimit(limit),
		storage.WithOffset(params.Offset),
	}
	options = append(options, record.OrderNewestFirst()...)
	if params.Topic != "" {
		options = append(options, record.WithTopic(params.Topic))
	}

	return r.store.Find(ctx, options...)
}

// Get returns one record by ID.
func (r *Records) Get(ctx context.Context, id int64) (record.Record, error) {
	return r.store.FindOne(ctx, storage.WithID(id))
}

// Count returns the total record count, optionally filtered by topic.
func (r *Records) Count(ctx context.Context, topic string) (int64, error) {
	var options []storage.Option
	if topic != "" {
		options = append(options, record.WithTopic(topic))
	}
	return r.store.Count(ctx, options...)
}
