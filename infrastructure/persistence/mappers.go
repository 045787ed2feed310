package persistence

import (
	"time"

	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
)

// RecordMapper maps between domain Record and persistence RecordModel.
type RecordMapper struct{}

// ToDomain converts a RecordModel to a domain Record.
func (m RecordMapper) ToDomain(e RecordModel) record.Record {
	var sourceTime time.Time
	if e.SourceTime != nil {
		sourceTime = *e.SourceTime
	}
	return record.Reconstruct(
		e.ID,
		e.Topic,
		e.Body,
		sourceTime,
		map[string]any(e.RawPayload),
		e.IngestedAt,
	)
}

// ToModel converts a domain Record to a RecordModel.
func (m RecordMapper) ToModel(r record.Record) RecordModel {
	var sourceTime *time.Time
	if r.HasSourceTime() {
		t := r.SourceTime()
		sourceTime = &t
	}
	return RecordModel{
		ID:         r.ID(),
		Topic:      r.Topic(),
		Body:       r.Body(),
		SourceTime: sourceTime,
		RawPayload: JSONMap(r.RawPayload()),
		IngestedAt: r.IngestedAt(),
	}
}

// PredictionMapper maps between domain Prediction and persistence
// PredictionModel.
type PredictionMapper struct{}

// ToDomain converts a PredictionModel to a domain Prediction.
func (m PredictionMapper) ToDomain(e PredictionModel) prediction.Prediction {
	return prediction.Reconstruct(
		e.ID,
		e.RecordID,
		e.ModelName,
		prediction.Label(e.Label),
		e.Score,
		e.ScoredAt,
	)
}

// ToModel converts a domain Prediction to a PredictionModel.
func (m PredictionMapper) ToModel(p prediction.Prediction) PredictionModel {
	return PredictionModel{
		ID:        p.ID(),
		RecordID:  p.RecordID(),
		ModelName: p.ModelName(),
		Label:     string(p.Label()),
		Score:     p.Score(),
		ScoredAt:  p.ScoredAt(),
	}
}
