package record

import (
	"time"

	"github.com/feedpulse/feedpulse/domain/storage"
)

// WithTopic filters by the "topic" column (exact match).
func WithTopic(topic string) storage.Option {
	return storage.WithCondition("topic", topic)
}

// WithIDAfter filters records with id strictly greater than the watermark.
func WithIDAfter(id int64) storage.Option {
	return storage.WithConditionOp("id", storage.OpGreaterThan, id)
}

// WithIngestedAfter filters records ingested strictly after the watermark.
func WithIngestedAfter(t time.Time) storage.Option {
	return storage.WithConditionOp("ingested_at", storage.OpGreaterThan, t)
}

// OrderOldestFirst orders by ingested time ascending, ids breaking ties.
// The scoring pipeline drains backlog in FIFO order so old records are
// never starved by new arrivals.
func OrderOldestFirst() []storage.Option {
	return []storage.Option{storage.WithOrderAsc("ingested_at"), storage.WithOrderAsc("id")}
}

// OrderNewestFirst orders by ingested time descending, the listing default.
func OrderNewestFirst() []storage.Option {
	return []storage.Option{storage.WithOrderDesc("ingested_at"), storage.WithOrderDesc("id")}
}
