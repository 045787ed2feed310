// Package v1 provides the v1 API routes.
package v1

import (
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
)

func recordToDTO(rec record.Record) dto.Record {
	out := dto.Record{
		ID:         rec.ID(),
		Topic:      rec.Topic(),
		Body:       rec.Body(),
		RawPayload: rec.RawPayload(),
		IngestedAt: rec.IngestedAt(),
	}
	if rec.HasSourceTime() {
		t := rec.SourceTime()
		out.SourceTime = &t
	}
	return out
}

func recordsToDTO(records []record.Record) []dto.Record {
	out := make([]dto.Record, len(records))
	for i, rec := range records {
		out[i] = recordToDTO(rec)
	}
	return out
}

func predictionToDTO(p prediction.Prediction) dto.Prediction {
	return dto.Prediction{
		ID:        p.ID(),
		RecordID:  p.RecordID(),
		ModelName: p.ModelName(),
		Label:     string(p.Label()),
		Score:     p.Score(),
		ScoredAt:  p.ScoredAt(),
	}
}

func scoredToDTO(rows []service.ScoredRecord) []dto.ScoredRecord {
	out := make([]dto.ScoredRecord, len(rows))
	for i, row := range rows {
		out[i] = dto.ScoredRecord{Record: recordToDTO(row.Record)}
		if row.Prediction != nil {
			p := predictionToDTO(*row.Prediction)
			out[i].Prediction = &p
		}
	}
	return out
}
