package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/domain/storage"
	"github.com/feedpulse/feedpulse/internal/database"
)

// RecordStore implements record.Store using GORM.
type RecordStore struct {
	database.Repository[record.Record, RecordModel]
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db database.Database) RecordStore {
	return RecordStore{
		Repository: database.NewRepository[record.Record, RecordModel](db, RecordMapper{}, "record"),
	}
}

// Save inserts a new record. The ingested time is assigned here, not by the
// caller, so it is monotonically non-decreasing with id under a single
// writer. There is no update path: records are immutable.
func (s RecordStore) Save(ctx context.Context, r record.Record) (record.Record, error) {
	model := s.Mapper().ToModel(r)
	model.ID = 0
	model.IngestedAt = time.Now().UTC()

	if result := s.DB(ctx).Create(&model); result.Error != nil {
		return record.Record{}, fmt.Errorf("insert record: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindUnscored retrieves records with no prediction row under the given
// model name. The anti-join is scoped per model name so each model tracks
// its own unscored frontier; optional filters (topic, watermarks, ordering,
// limit) arrive as storage options.
func (s RecordStore) FindUnscored(ctx context.Context, modelName string, options ...storage.Option) ([]record.Record, error) {
	var entities []RecordModel
	db := s.DB(ctx).Model(&RecordModel{}).
		Where(
			"NOT EXISTS (SELECT 1 FROM predictions WHERE predictions.record_id = records.id AND predictions.model_name = ?)",
			modelName,
		)
	db = database.ApplyOptions(db, options...)
	if result := db.Find(&entities); result.Error != nil {
		return nil, fmt.Errorf("find unscored records: %w", result.Error)
	}

	records := make([]record.Record, len(entities))
	for i, entity := range entities {
		records[i] = s.Mapper().ToDomain(entity)
	}
	return records, nil
}

var _ record.Store = RecordStore{}
