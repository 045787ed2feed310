// Package dto defines the wire types for the v1 API.
package dto

import "time"

// Record is the wire form of a stored record.
type Record struct {
	ID         int64          `json:"id"`
	Topic      string         `json:"topic"`
	Body       string         `json:"body"`
	SourceTime *time.Time     `json:"source_time,omitempty"`
	RawPayload map[string]any `json:"raw_payload,omitempty"`
	IngestedAt time.Time      `json:"ingested_at"`
}

// RecordListResponse wraps a page of records.
type RecordListResponse struct {
	Data []Record `json:"data"`
	Meta ListMeta `json:"meta"`
}

// ListMeta carries paging information for list responses.
type ListMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// IngestRequest asks for an ingest run.
type IngestRequest struct {
	Source string `json:"source"`
	Topic  string `json:"topic"`
	Count  int    `json:"count,omitempty"`
	Path   string `json:"path,omitempty"`
}

// IngestResponse reports what an ingest run persisted.
type IngestResponse struct {
	Source    string  `json:"source"`
	Inserted  int     `json:"inserted"`
	RecordIDs []int64 `json:"record_ids"`
}
