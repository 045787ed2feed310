package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/internal/database"
	"gorm.io/gorm"
)

// PredictionStore implements prediction.Store using GORM.
type PredictionStore struct {
	database.Repository[prediction.Prediction, PredictionModel]
	db database.Database
}

// NewPredictionStore creates a new PredictionStore.
func NewPredictionStore(db database.Database) PredictionStore {
	return PredictionStore{
		Repository: database.NewRepository[prediction.Prediction, PredictionModel](db, PredictionMapper{}, "prediction"),
		db:         db,
	}
}

// Append inserts a new prediction row. The scored time is assigned here so
// ordering is consistent with insertion order for a single writer. The
// referenced record must exist; the existence check and the insert share a
// transaction so the reference cannot vanish in between. No update or
// delete path exists: the log is append-only.
func (s PredictionStore) Append(ctx context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	if !p.Label().Valid() {
		return prediction.Prediction{}, fmt.Errorf("%w: unrecognized label %q", prediction.ErrValidation, p.Label())
	}
	if p.Score() < 0 || p.Score() > 1 {
		return prediction.Prediction{}, fmt.Errorf("%w: score %v outside [0, 1]", prediction.ErrValidation, p.Score())
	}

	model := s.Mapper().ToModel(p)
	model.ID = 0
	model.ScoredAt = time.Now().UTC()

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var count int64
		if result := tx.Model(&RecordModel{}).Where("id = ?", p.RecordID()).Count(&count); result.Error != nil {
			return fmt.Errorf("check record exists: %w", result.Error)
		}
		if count == 0 {
			return fmt.Errorf("%w: record %d", prediction.ErrReferential, p.RecordID())
		}
		if result := tx.Create(&model); result.Error != nil {
			return fmt.Errorf("append prediction: %w", result.Error)
		}
		return nil
	})
	if err != nil {
		return prediction.Prediction{}, err
	}
	return s.Mapper().ToDomain(model), nil
}

// ForRecords retrieves every prediction for the given record ids in one
// query, optionally restricted to a model name. Callers reduce the rows
// with prediction.LatestPerRecord, so there is never one lookup per record.
func (s PredictionStore) ForRecords(ctx context.Context, recordIDs []int64, modelName string) ([]prediction.Prediction, error) {
	if len(recordIDs) == 0 {
		return []prediction.Prediction{}, nil
	}

	db := s.DB(ctx).Model(&PredictionModel{}).Where("record_id IN ?", recordIDs)
	if modelName != "" {
		db = db.Where("model_name = ?", modelName)
	}

	var entities []PredictionModel
	if result := db.Find(&entities); result.Error != nil {
		return nil, fmt.Errorf("find predictions for records: %w", result.Error)
	}
	return s.toDomain(entities), nil
}

// ForTopic retrieves every prediction under the given model whose record
// carries the topic, in one joined query. An empty topic means all records.
func (s PredictionStore) ForTopic(ctx context.Context, topic, modelName string) ([]prediction.Prediction, error) {
	db := s.DB(ctx).Model(&PredictionModel{}).
		Where("predictions.model_name = ?", modelName)
	if topic != "" {
		db = db.
			Joins("JOIN records ON records.id = predictions.record_id").
			Where("records.topic = ?", topic)
	}

	var entities []PredictionModel
	if result := db.Find(&entities); result.Error != nil {
		return nil, fmt.Errorf("find predictions for topic: %w", result.Error)
	}
	return s.toDomain(entities), nil
}

func (s PredictionStore) toDomain(entities []PredictionModel) []prediction.Prediction {
	predictions := make([]prediction.Prediction, len(entities))
	for i, entity := range entities {
		predictions[i] = s.Mapper().ToDomain(entity)
	}
	return predictions
}

var _ prediction.Store = PredictionStore{}
