package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/record"
	"github.com/feedpulse/feedpulse/infrastructure/persistence"
	"github.com/feedpulse/feedpulse/internal/database"
	"github.com/feedpulse/feedpulse/internal/testdb"
)

func TestRecords_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRecordStore(testdb.New(t))
	svc := NewRecords(store, testLogger())

	var ids []int64
	for _, body := range []string{"one", "two", "three"} {
		saved, err := store.Save(ctx, record.New("golang", body))
		require.NoError(t, err)
		ids = append(ids, saved.ID())
	}

	records, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ids[2], records[0].ID())
	assert.Equal(t, ids[0], records[2].ID())
}

func TestRecords_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRecordStore(testdb.New(t))
	svc := NewRecords(store, testLogger())

	for _, body := range []string{"one", "two", "three"} {
		_, err := store.Save(ctx, record.New("golang", body))
		require.NoError(t, err)
	}
	_, err := store.Save(ctx, record.New("rust", "four"))
	require.NoError(t, err)

	records, err := svc.List(ctx, ListParams{Topic: "golang", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	total, err := svc.Count(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestRecords_GetMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewRecords(persistence.NewRecordStore(testdb.New(t)), testLogger())

	_, err := svc.Get(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
