package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/infrastructure/persistence"
	"github.com/feedpulse/feedpulse/internal/testdb"
)

type analyticsFixture struct {
	records     persistence.RecordStore
	predictions persistence.PredictionStore
	analytics   *Analytics
}

func newAnalyticsFixture(t *testing.T) analyticsFixture {
	t.Helper()
	db := testdb.New(t)
	records := persistence.NewRecordStore(db)
	predictions := persistence.NewPredictionStore(db)
	return analyticsFixture{
		records:     records,
		predictions: predictions,
		analytics:   NewAnalytics(records, predictions, testLogger()),
	}
}

func (f analyticsFixture) seed(t *testing.T, topic, body string) record.Record {
	t.Helper()
	saved, err := f.records.Save(context.Background(), record.New(topic, body))
	require.NoError(t, err)
	return saved
}

func (f analyticsFixture) predict(t *testing.T, recordID int64, model string, label prediction.Label, score float64) prediction.Prediction {
	t.Helper()
	p, err := prediction.New(recordID, model, label, score)
	require.NoError(t, err)
	saved, err := f.predictions.Append(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func TestAnalytics_LatestJoinsMostRecentPrediction(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	rec := f.seed(t, "golang", "one")
	f.predict(t, rec.ID(), "model-a", prediction.LabelNegative, 0.9)
	latest := f.predict(t, rec.ID(), "model-a", prediction.LabelPositive, 0.7)

	rows, err := f.analytics.Latest(ctx, LatestParams{Topic: "golang"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Prediction)
	assert.Equal(t, latest.ID(), rows[0].Prediction.ID())
	assert.Equal(t, prediction.LabelPositive, rows[0].Prediction.Label())
}

func TestAnalytics_LatestIncludesUnscoredRecords(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	scored := f.seed(t, "golang", "one")
	f.seed(t, "golang", "two")
	f.predict(t, scored.ID(), "model-a", prediction.LabelNeutral, 0.5)

	rows, err := f.analytics.Latest(ctx, LatestParams{Topic: "golang"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var withPrediction, withoutPrediction int
	for _, row := range rows {
		if row.Prediction != nil {
			withPrediction++
		} else {
			withoutPrediction++
		}
	}
	assert.Equal(t, 1, withPrediction)
	assert.Equal(t, 1, withoutPrediction)
}

func TestAnalytics_LatestNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	first := f.seed(t, "golang", "one")
	second := f.seed(t, "golang", "two")

	rows, err := f.analytics.Latest(ctx, LatestParams{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID(), rows[0].Record.ID())
	assert.Equal(t, first.ID(), rows[1].Record.ID())
}

func TestAnalytics_LatestFiltersByModel(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	rec := f.seed(t, "golang", "one")
	f.predict(t, rec.ID(), "model-a", prediction.LabelNegative, 0.9)
	f.predict(t, rec.ID(), "model-b", prediction.LabelPositive, 0.8)

	rows, err := f.analytics.Latest(ctx, LatestParams{ModelName: "model-a"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Prediction)
	assert.Equal(t, "model-a", rows[0].Prediction.ModelName())
}

func TestAnalytics_StatsRequiresModelName(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	_, err := f.analytics.Stats(ctx, StatsParams{})
	assert.ErrorIs(t, err, prediction.ErrValidation)
}

func TestAnalytics_StatsCountsLatestPerRecord(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	rec := f.seed(t, "golang", "one")
	other := f.seed(t, "golang", "two")
	// Record scored twice: only the latest row may count.
	f.predict(t, rec.ID(), "model-a", prediction.LabelNegative, 0.9)
	f.predict(t, rec.ID(), "model-a", prediction.LabelPositive, 0.7)
	f.predict(t, other.ID(), "model-a", prediction.LabelPositive, 0.5)

	stats, err := f.analytics.Stats(ctx, StatsParams{ModelName: "model-a"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total())
	assert.Equal(t, int64(2), stats.ByLabel()[prediction.LabelPositive].Count())
	assert.Zero(t, stats.ByLabel()[prediction.LabelNegative].Count())
}

func TestAnalytics_StatsFiltersByTopic(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	goRec := f.seed(t, "golang", "one")
	rustRec := f.seed(t, "rust", "two")
	f.predict(t, goRec.ID(), "model-a", prediction.LabelPositive, 0.8)
	f.predict(t, rustRec.ID(), "model-a", prediction.LabelNegative, 0.9)

	stats, err := f.analytics.Stats(ctx, StatsParams{ModelName: "model-a", Topic: "golang"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total())
	assert.Equal(t, int64(1), stats.ByLabel()[prediction.LabelPositive].Count())
}

func TestAnalytics_RescoringSameModelKeepsAggregatesStable(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewRecordStore(db)
	predictions := persistence.NewPredictionStore(db)
	analytics := NewAnalytics(records, predictions, testLogger())
	registry := classify.NewRegistry()
	clf := &fakeClassifier{name: "model-a", label: prediction.LabelPositive, score: 0.9}
	registry.Register(clf)
	scoring := NewScoring(records, predictions, registry, testLogger())

	for _, body := range []string{"one", "two"} {
		_, err := records.Save(ctx, record.New("golang", body))
		require.NoError(t, err)
	}

	_, err := scoring.Run(ctx, ScoreParams{ModelName: "model-a"})
	require.NoError(t, err)
	before, err := analytics.Stats(ctx, StatsParams{ModelName: "model-a"})
	require.NoError(t, err)

	// Another pass has nothing to do, so the aggregates cannot move.
	_, err = scoring.Run(ctx, ScoreParams{ModelName: "model-a"})
	require.NoError(t, err)
	after, err := analytics.Stats(ctx, StatsParams{ModelName: "model-a"})
	require.NoError(t, err)

	assert.Equal(t, before.Total(), after.Total())
	assert.Equal(t, before.ByLabel(), after.ByLabel())
}
