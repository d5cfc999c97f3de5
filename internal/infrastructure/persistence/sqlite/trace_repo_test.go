package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/navstack/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newStore(t *testing.T) (*sqlite.TraceStore, *sqlite.LazyDB) {
	t.Helper()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "traces.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	return sqlite.NewTraceStore(lazy), lazy
}

func TestTraceStore_RecordAndList(t *testing.T) {
	ctx := testCtx()
	store, lazy := newStore(t)
	assert.False(t, lazy.IsInitialized())

	rec, err := store.BeginRun(ctx, "three-layers", 42)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID())
	assert.True(t, lazy.IsInitialized())

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []entity.TraceEvent{
		{Seq: 1, Kind: entity.TraceReplace, Index: 0, Stamp: 42, At: at},
		{Seq: 2, Kind: entity.TracePush, Index: 1, Stamp: 42, At: at},
		{Seq: 3, Kind: entity.TraceUserBack, Index: 1, Delta: -1, At: at},
		{Seq: 4, Kind: entity.TraceNotify, Index: 0, Stamp: 42, At: at},
		{Seq: 5, Kind: entity.TraceNotify, Index: 0, Note: "no-payload", At: at},
	}
	for _, ev := range events {
		require.NoError(t, rec.Record(ctx, ev))
	}

	got, err := store.List(ctx, rec.ID())
	require.NoError(t, err)
	require.Len(t, got, len(events))
	for i := range events {
		assert.Equal(t, events[i].Seq, got[i].Seq)
		assert.Equal(t, events[i].Kind, got[i].Kind)
		assert.Equal(t, events[i].Index, got[i].Index)
		assert.Equal(t, events[i].Delta, got[i].Delta)
		assert.Equal(t, events[i].Stamp, got[i].Stamp)
		assert.Equal(t, events[i].Note, got[i].Note)
		assert.True(t, got[i].At.Equal(at))
	}
}

func TestTraceStore_RunsAndClose(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)

	first, err := store.BeginRun(ctx, "first", 1)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TracePush, Index: 1}))
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())
	assert.ErrorIs(t, first.Record(ctx, entity.TraceEvent{Seq: 2, Kind: entity.TracePush}), sqlite.ErrRunClosed)

	second, err := store.BeginRun(ctx, "second", 2)
	require.NoError(t, err)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]sqlite.Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	assert.Equal(t, "first", byID[first.ID()].Label)
	assert.Equal(t, 1, byID[first.ID()].Events)
	assert.NotNil(t, byID[first.ID()].EndedAt)
	assert.Equal(t, entity.SessionStamp(2), byID[second.ID()].Stamp)
	assert.Nil(t, byID[second.ID()].EndedAt)
}

func TestTraceStore_DuplicateSeqFails(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)

	rec, err := store.BeginRun(ctx, "dup", 1)
	require.NoError(t, err)
	require.NoError(t, rec.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TracePush}))
	assert.Error(t, rec.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TracePush}))
}

func TestTraceStore_DeleteCascades(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)

	rec, err := store.BeginRun(ctx, "gone", 1)
	require.NoError(t, err)
	require.NoError(t, rec.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TraceGo, Delta: -1}))

	require.NoError(t, store.Delete(ctx, rec.ID()))

	events, err := store.List(ctx, rec.ID())
	require.NoError(t, err)
	assert.Empty(t, events)

	runs, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestGetMigrationStatus(t *testing.T) {
	ctx := testCtx()
	_, lazy := newStore(t)

	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestTraceStore_Prune(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)

	var ids []string
	for _, label := range []string{"a", "b", "c", "d"} {
		rec, err := store.BeginRun(ctx, label, 1)
		require.NoError(t, err)
		require.NoError(t, rec.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TracePush, Index: 1}))
		ids = append(ids, rec.ID())
	}

	removed, err := store.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = store.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "d", runs[0].Label)
	assert.Equal(t, "c", runs[1].Label)

	events, err := store.List(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, events, "events of pruned runs cascade")
}

func TestTraceStore_Info(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)

	info, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StoreInfo{SchemaVersion: 1}, info)

	rec, err := store.BeginRun(ctx, "counted", 1)
	require.NoError(t, err)
	require.NoError(t, rec.Record(ctx, entity.TraceEvent{Seq: 1, Kind: entity.TracePush, Index: 1}))
	require.NoError(t, rec.Record(ctx, entity.TraceEvent{Seq: 2, Kind: entity.TraceGo, Delta: -1}))

	info, err = store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Runs)
	assert.Equal(t, 2, info.Events)
}
