package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/domain/watchtime"
	"github.com/mindthevirt/binge-master-api/internal/storage/memstorage"
)

func TestWatchtimeService_RecordAndQuery(t *testing.T) {
	repo := memstorage.NewWatchtimeRepository()
	svc := NewWatchtimeService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "u1", 120000, true, 0))
	require.NoError(t, svc.Record(ctx, "u1", 30000, false, 3600000))

	events, total, err := svc.QueryRecent(ctx, "u1", DefaultWindowDays)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(150000), total)

	assert.Equal(t, int64(120000), events[0].WatchtimeMs)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp) || events[0].Timestamp.Equal(events[1].Timestamp),
		"events must be ordered by timestamp ascending")

	assert.True(t, events[0].TrackingEnabled)
	assert.False(t, events[1].TrackingEnabled)
	assert.Equal(t, int64(3600000), events[1].DailyLimitMs)
}

func TestWatchtimeService_QueryRecent_UnknownIdentifier(t *testing.T) {
	svc := NewWatchtimeService(memstorage.NewWatchtimeRepository(), zap.NewNop())

	events, total, err := svc.QueryRecent(context.Background(), "unknown", DefaultWindowDays)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Zero(t, total)
}

func TestWatchtimeService_QueryRecent_WindowExcludesOldEvents(t *testing.T) {
	repo := memstorage.NewWatchtimeRepository()
	svc := NewWatchtimeService(repo, zap.NewNop())
	ctx := context.Background()

	now := time.Now().UTC()
	appendAt := func(ts time.Time, ms int64) {
		_, err := repo.Append(ctx, &watchtime.Event{
			UniqueIdentifier: "u1",
			Timestamp:        ts,
			WatchtimeMs:      ms,
			TrackingEnabled:  true,
		})
		require.NoError(t, err)
	}

	// The comparison is on calendar dates: an event from exactly
	// DefaultWindowDays days ago stays in, one day further out drops off.
	appendAt(now.AddDate(0, 0, -DefaultWindowDays), 1000)
	appendAt(now.AddDate(0, 0, -DefaultWindowDays-1), 2000)
	appendAt(now, 4000)

	events, total, err := svc.QueryRecent(ctx, "u1", DefaultWindowDays)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(5000), total)
}

func TestWatchtimeService_DuplicateSubmissionsProduceDuplicateRows(t *testing.T) {
	repo := memstorage.NewWatchtimeRepository()
	svc := NewWatchtimeService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "u1", 1000, true, 0))
	require.NoError(t, svc.Record(ctx, "u1", 1000, true, 0))

	assert.Equal(t, 2, repo.Count(), "the ledger is append-only and not idempotent")
}
