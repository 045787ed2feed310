// Package record provides the domain types for ingested text records.
package record

import "time"

// Record is a persisted unit of ingested text. Records are immutable once
// stored: no update or delete operations exist anywhere in the system.
type Record struct {
	id         int64
	topic      string
	body       string
	sourceTime time.Time
	rawPayload map[string]any
	ingestedAt time.Time
}

// New creates a record for a new, not yet persisted, unit of text.
// The store assigns the id and ingested time on insert.
func New(topic, body string) Record {
	return Record{
		topic: topic,
		body:  body,
	}
}

// Reconstruct recreates a record from persistence (for store use).
func Reconstruct(
	id int64,
	topic string,
	body string,
	sourceTime time.Time,
	rawPayload map[string]any,
	ingestedAt time.Time,
) Record {
	return Record{
		id:         id,
		topic:      topic,
		body:       body,
		sourceTime: sourceTime,
		rawPayload: rawPayload,
		ingestedAt: ingestedAt,
	}
}

// WithSourceTime returns a copy carrying the original authorship time.
func (r Record) WithSourceTime(t time.Time) Record {
	r.sourceTime = t
	return r
}

// WithRawPayload returns a copy carrying the opaque source payload.
// The payload is stored verbatim and never interpreted.
func (r Record) WithRawPayload(payload map[string]any) Record {
	r.rawPayload = payload
	return r
}

// ID returns the record's database identifier (0 before persistence).
func (r Record) ID() int64 {
	return r.id
}

// Topic returns the free-text grouping label supplied at ingestion time.
func (r Record) Topic() string {
	return r.topic
}

// Body returns the raw text content.
func (r Record) Body() string {
	return r.body
}

// SourceTime returns the original authorship time, zero when unknown.
func (r Record) SourceTime() time.Time {
	return r.sourceTime
}

// HasSourceTime reports whether the original authorship time is known.
func (r Record) HasSourceTime() bool {
	return !r.sourceTime.IsZero()
}

// RawPayload returns the opaque source payload, nil when absent.
func (r Record) RawPayload() map[string]any {
	return r.rawPayload
}

// IngestedAt returns the store-assigned insertion time.
func (r Record) IngestedAt() time.Time {
	return r.ingestedAt
}
