// Package prediction provides the domain types for the append-only
// sentiment prediction log.
package prediction

import (
	"errors"
	"fmt"
	"time"
)

// Label is a canonical sentiment category.
type Label string

// Canonical sentiment labels. Classifier adapters translate their raw
// model vocabularies to this set before anything is persisted.
const (
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelPositive Label = "POSITIVE"
)

// Labels returns the canonical label set in display order.
func Labels() []Label {
	return []Label{LabelNegative, LabelNeutral, LabelPositive}
}

// Valid reports whether the label belongs to the canonical set.
func (l Label) Valid() bool {
	switch l {
	case LabelNegative, LabelNeutral, LabelPositive:
		return true
	}
	return false
}

// ErrValidation indicates malformed input: a score outside [0, 1], a label
// outside the canonical set, or a missing required parameter. Never retried.
var ErrValidation = errors.New("validation failed")

// ErrReferential indicates an operation referencing a nonexistent record.
var ErrReferential = errors.New("referenced record does not exist")

// Prediction is one scoring result for one record by one model. The log is
// append-only: predictions are never updated or deleted, and re-scoring a
// record under a different model simply appends another row.
type Prediction struct {
	id        int64
	recordID  int64
	modelName string
	label     Label
	score     float64
	scoredAt  time.Time
}

// New creates a prediction for a new scoring result. The store assigns the
// id and scored time on append. Returns ErrValidation when the label is not
// canonical or the score falls outside [0, 1].
func New(recordID int64, modelName string, label Label, score float64) (Prediction, error) {
	if !label.Valid() {
		return Prediction{}, fmt.Errorf("%w: unrecognized label %q", ErrValidation, label)
	}
	if score < 0 || score > 1 {
		return Prediction{}, fmt.Errorf("%w: score %v outside [0, 1]", ErrValidation, score)
	}
	if modelName == "" {
		return Prediction{}, fmt.Errorf("%w: model name is required", ErrValidation)
	}
	return Prediction{
		recordID:  recordID,
		modelName: modelName,
		label:     label,
		score:     score,
	}, nil
}

// Reconstruct recreates a prediction from persistence (for store use).
func Reconstruct(id, recordID int64, modelName string, label Label, score float64, scoredAt time.Time) Prediction {
	return Prediction{
		id:        id,
		recordID:  recordID,
		modelName: modelName,
		label:     label,
		score:     score,
		scoredAt:  scoredAt,
	}
}

// ID returns the prediction's database identifier (0 before persistence).
func (p Prediction) ID() int64 {
	return p.id
}

// RecordID returns the identifier of the record this prediction scores.
func (p Prediction) RecordID() int64 {
	return p.recordID
}

// ModelName identifies the classifier variant that produced this result.
func (p Prediction) ModelName() string {
	return p.modelName
}

// Label returns the canonical sentiment label.
func (p Prediction) Label() Label {
	return p.label
}

// Score returns the confidence value in [0, 1].
func (p Prediction) Score() float64 {
	return p.score
}

// ScoredAt returns the store-assigned insertion time.
func (p Prediction) ScoredAt() time.Time {
	return p.scoredAt
}

// Supersedes reports whether p is more recent than other under the
// latest-per-group rule: max scored time, ties broken by max id.
func (p Prediction) Supersedes(other Prediction) bool {
	if p.scoredAt.Equal(other.scoredAt) {
		return p.id > other.id
	}
	return p.scoredAt.After(other.scoredAt)
}
