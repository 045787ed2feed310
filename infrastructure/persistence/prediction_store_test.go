package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
)

func seedRecord(t *testing.T, store RecordStore, topic, body string) record.Record {
	t.Helper()
	saved, err := store.Save(context.Background(), record.New(topic, body))
	require.NoError(t, err)
	return saved
}

func TestPredictionStore_AppendAssignsIDAndScoredAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	rec := seedRecord(t, records, "golang", "hello")

	p, err := prediction.New(rec.ID(), "model-a", prediction.LabelPositive, 0.8)
	require.NoError(t, err)

	saved, err := predictions.Append(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())
	assert.False(t, saved.ScoredAt().IsZero())
}

func TestPredictionStore_AppendRejectsMissingRecord(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	predictions := NewPredictionStore(db)

	p := prediction.Reconstruct(0, 999, "model-a", prediction.LabelNeutral, 0.5, time.Time{})
	_, err := predictions.Append(ctx, p)
	assert.ErrorIs(t, err, prediction.ErrReferential)

	count, err := predictions.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPredictionStore_AppendRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	rec := seedRecord(t, records, "golang", "hello")

	badLabel := prediction.Reconstruct(0, rec.ID(), "model-a", prediction.Label("SHRUG"), 0.5, time.Time{})
	_, err := predictions.Append(ctx, badLabel)
	assert.ErrorIs(t, err, prediction.ErrValidation)

	badScore := prediction.Reconstruct(0, rec.ID(), "model-a", prediction.LabelNeutral, 1.5, time.Time{})
	_, err = predictions.Append(ctx, badScore)
	assert.ErrorIs(t, err, prediction.ErrValidation)
}

func TestPredictionStore_AppendNeverUpdates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	rec := seedRecord(t, records, "golang", "hello")

	for _, label := range []prediction.Label{prediction.LabelNegative, prediction.LabelPositive} {
		p, err := prediction.New(rec.ID(), "model-a", label, 0.7)
		require.NoError(t, err)
		_, err = predictions.Append(ctx, p)
		require.NoError(t, err)
	}

	count, err := predictions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPredictionStore_ForRecords(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	first := seedRecord(t, records, "golang", "one")
	second := seedRecord(t, records, "golang", "two")
	third := seedRecord(t, records, "golang", "three")

	for _, rec := range []record.Record{first, second} {
		p, err := prediction.New(rec.ID(), "model-a", prediction.LabelPositive, 0.8)
		require.NoError(t, err)
		_, err = predictions.Append(ctx, p)
		require.NoError(t, err)
	}
	p, err := prediction.New(first.ID(), "model-b", prediction.LabelNegative, 0.6)
	require.NoError(t, err)
	_, err = predictions.Append(ctx, p)
	require.NoError(t, err)

	// Restricted to one model
	rows, err := predictions.ForRecords(ctx, []int64{first.ID(), second.ID(), third.ID()}, "model-a")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// All models
	rows, err = predictions.ForRecords(ctx, []int64{first.ID()}, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// No ids means no rows and no query
	rows, err = predictions.ForRecords(ctx, nil, "model-a")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPredictionStore_ForTopic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	goRec := seedRecord(t, records, "golang", "one")
	rustRec := seedRecord(t, records, "rust", "two")

	for _, rec := range []record.Record{goRec, rustRec} {
		p, err := prediction.New(rec.ID(), "model-a", prediction.LabelNeutral, 0.5)
		require.NoError(t, err)
		_, err = predictions.Append(ctx, p)
		require.NoError(t, err)
	}

	rows, err := predictions.ForTopic(ctx, "golang", "model-a")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, goRec.ID(), rows[0].RecordID())

	rows, err = predictions.ForTopic(ctx, "", "model-a")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = predictions.ForTopic(ctx, "golang", "model-b")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPredictionStore_FindByModel(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	records := NewRecordStore(db)
	predictions := NewPredictionStore(db)

	rec := seedRecord(t, records, "golang", "one")
	for _, model := range []string{"model-a", "model-b"} {
		p, err := prediction.New(rec.ID(), model, prediction.LabelNeutral, 0.5)
		require.NoError(t, err)
		_, err = predictions.Append(ctx, p)
		require.NoError(t, err)
	}

	rows, err := predictions.Find(ctx, prediction.WithModelName("model-a"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "model-a", rows[0].ModelName())
}
