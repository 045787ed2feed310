// Package persistence provides database storage implementations.
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/internal/database"
)

// RecordModel is the GORM model for the records table. Rows are insert-only;
// no code path updates or deletes them.
type RecordModel struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Topic      string     `gorm:"column:topic;index;not null"`
	Body       string     `gorm:"column:body;not null"`
	SourceTime *time.Time `gorm:"column:source_time"`
	RawPayload JSONMap    `gorm:"column:raw_payload;type:json"`
	IngestedAt time.Time  `gorm:"column:ingested_at;index;not null"`
}

// TableName returns the table name for RecordModel.
func (RecordModel) TableName() string { return "records" }

// PredictionModel is the GORM model for the append-only predictions table.
// The (record_id, model_name) index serves both the anti-join candidate
// selection and the latest-per-group queries.
type PredictionModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RecordID  int64     `gorm:"column:record_id;index:idx_predictions_record_model;not null"`
	ModelName string    `gorm:"column:model_name;index:idx_predictions_record_model;not null"`
	Label     string    `gorm:"column:label;not null"`
	Score     float64   `gorm:"column:score;not null"`
	ScoredAt  time.Time `gorm:"column:scored_at;index;not null"`
}

// TableName returns the table name for PredictionModel.
func (PredictionModel) TableName() string { return "predictions" }

// JSONMap stores an opaque JSON object as a single column. The payload is
// written and read verbatim; nothing in the core interprets it.
type JSONMap map[string]any

// Value implements driver.Valuer, serialising the map to JSON.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal raw payload: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner, deserialising JSON into the map.
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported raw payload type %T", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&RecordModel{},
		&PredictionModel{},
	)
}
