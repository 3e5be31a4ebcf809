package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

func newJobService(t *testing.T, provider *stubProvider) (*JobService, *cache.Store) {
	t.Helper()

	store := newTestStore(t)
	rosters := NewRosterService(provider, store, logging.NewNop())
	rosters.now = func() time.Time { return day("2025-07-01") }
	return NewJobService(rosters, store, logging.NewNop()), store
}

func TestWarmRoster(t *testing.T) {
	t.Parallel()

	provider := newStubProvider()
	for _, dayStr := range []string{"2025-06-01", "2025-06-02", "2025-06-03"} {
		provider.rosters[dayStr] = roster.Snapshot{
			Date:    day(dayStr),
			Entries: []roster.Entry{testEntry(1, "Warm Body", "1", "Pitcher")},
		}
	}
	svc, store := newJobService(t, provider)

	result, err := svc.WarmRoster(context.Background(), WarmupInput{
		Start: day("2025-06-01"),
		End:   day("2025-06-03"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.DateCount)
	assert.Equal(t, 3, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
	require.Len(t, result.Dates, 3)
	assert.Equal(t, "2025-06-01", result.Dates[0].Date)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestWarmRoster_RecordsFailures(t *testing.T) {
	t.Parallel()

	provider := newStubProvider()
	provider.rosters["2025-06-01"] = roster.Snapshot{
		Date:    day("2025-06-01"),
		Entries: []roster.Entry{testEntry(1, "Warm Body", "1", "Pitcher")},
	}
	// 2025-06-02 missing from the stub, so that date fails.
	svc, _ := newJobService(t, provider)

	result, err := svc.WarmRoster(context.Background(), WarmupInput{
		Start: day("2025-06-01"),
		End:   day("2025-06-02"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
}

func TestWarmRoster_ValidatesWindow(t *testing.T) {
	t.Parallel()

	svc, _ := newJobService(t, newStubProvider())

	_, err := svc.WarmRoster(context.Background(), WarmupInput{
		Start: day("2025-06-02"),
		End:   day("2025-06-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.WarmRoster(context.Background(), WarmupInput{
		Start: day("2025-01-01"),
		End:   day("2025-06-30"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSweepAndClearCache(t *testing.T) {
	t.Parallel()

	svc, store := newJobService(t, newStubProvider())
	ctx := context.Background()

	store.Set(ctx, cache.RosterKey{Date: "2025-06-01"}, "payload")

	swept, err := svc.SweepCache(ctx)
	require.NoError(t, err)
	assert.Zero(t, swept)

	cleared, err := svc.ClearCache(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)
}
