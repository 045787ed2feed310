package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/infrastructure/ingest"
	"github.com/feedpulse/feedpulse/infrastructure/persistence"
	"github.com/feedpulse/feedpulse/internal/testdb"
)

type fakeSource struct {
	name    string
	records []record.Record
	err     error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Fetch(_ context.Context, _ ingest.Params) ([]record.Record, error) {
	return f.records, f.err
}

func TestIngest_RunPersistsFetchedRecords(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewRecordStore(db)
	svc := NewIngest(records, testLogger())
	svc.RegisterSource(fakeSource{
		name: "fake",
		records: []record.Record{
			record.New("golang", "one"),
			record.New("golang", "two"),
		},
	})

	result, err := svc.Run(ctx, IngestParams{Source: "fake", Topic: "golang"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Len(t, result.RecordIDs, 2)

	count, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIngest_UnknownSource(t *testing.T) {
	ctx := context.Background()
	svc := NewIngest(persistence.NewRecordStore(testdb.New(t)), testLogger())

	_, err := svc.Run(ctx, IngestParams{Source: "nope"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestIngest_FetchErrorPersistsNothing(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewRecordStore(db)
	svc := NewIngest(records, testLogger())
	svc.RegisterSource(fakeSource{name: "fake", err: errors.New("feed down")})

	_, err := svc.Run(ctx, IngestParams{Source: "fake"})
	assert.Error(t, err)

	count, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngest_SourcesSorted(t *testing.T) {
	svc := NewIngest(persistence.NewRecordStore(testdb.New(t)), testLogger())
	svc.RegisterSource(fakeSource{name: "zeta"})
	svc.RegisterSource(fakeSource{name: "alpha"})

	assert.Equal(t, []string{"alpha", "zeta"}, svc.Sources())
}
