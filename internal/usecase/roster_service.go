package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

// RosterService serves roster snapshots and pairwise comparisons. Snapshots
// are memoized in the durable cache under the roster TTL.
type RosterService struct {
	provider StatsProvider
	store    *cache.Store
	logger   *logging.Logger
	now      func() time.Time
}

func NewRosterService(provider StatsProvider, store *cache.Store, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		provider: provider,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// RosterForDate returns the active roster as of the given civil date,
// serving from cache when the snapshot is fresh.
func (s *RosterService) RosterForDate(ctx context.Context, date time.Time) (roster.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RosterForDate")
	defer span.End()

	date = roster.Day(date)
	if err := s.validateDate(date); err != nil {
		return roster.Snapshot{}, err
	}

	key := cache.RosterKey{Date: roster.FormatDate(date)}
	snapshot, err := cache.Lookup(ctx, s.store, key, func(ctx context.Context) (roster.Snapshot, error) {
		fetched, fetchErr := s.provider.RosterForDate(ctx, date)
		if fetchErr != nil {
			return roster.Snapshot{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, fetchErr)
		}
		return fetched, nil
	})
	if err != nil {
		return roster.Snapshot{}, err
	}

	return snapshot, nil
}

// CompareRosters diffs the roster between two dates. Both snapshots are
// fetched concurrently; either failure is fatal since a one-sided
// comparison is meaningless.
func (s *RosterService) CompareRosters(ctx context.Context, from, to time.Time) (roster.Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.CompareRosters")
	defer span.End()

	from, to = roster.Day(from), roster.Day(to)
	if from.After(to) {
		return roster.Comparison{}, fmt.Errorf("%w: from date %s is after to date %s",
			ErrInvalidInput, roster.FormatDate(from), roster.FormatDate(to))
	}

	var fromSnap, toSnap roster.Snapshot
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		snap, err := s.RosterForDate(ctx, from)
		if err != nil {
			return fmt.Errorf("fetch from snapshot: %w", err)
		}
		fromSnap = snap
		return nil
	})
	p.Go(func(ctx context.Context) error {
		snap, err := s.RosterForDate(ctx, to)
		if err != nil {
			return fmt.Errorf("fetch to snapshot: %w", err)
		}
		toSnap = snap
		return nil
	})
	if err := p.Wait(); err != nil {
		return roster.Comparison{}, err
	}

	return roster.Diff(fromSnap, toSnap), nil
}

// PlayerDetails returns one player's biographical record, cached under the
// roster TTL.
func (s *RosterService) PlayerDetails(ctx context.Context, playerID int64) (roster.PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.PlayerDetails")
	defer span.End()

	if playerID <= 0 {
		return roster.PlayerDetails{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	key := cache.PlayerKey{PlayerID: playerID}
	details, err := cache.Lookup(ctx, s.store, key, func(ctx context.Context) (roster.PlayerDetails, error) {
		fetched, fetchErr := s.provider.PlayerDetails(ctx, playerID)
		if fetchErr != nil {
			return roster.PlayerDetails{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, fetchErr)
		}
		return fetched, nil
	})
	if err != nil {
		return roster.PlayerDetails{}, err
	}

	if details.ID == 0 {
		return roster.PlayerDetails{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return details, nil
}

func (s *RosterService) validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if date.After(roster.Day(s.now())) {
		return fmt.Errorf("%w: date %s is in the future", ErrInvalidInput, roster.FormatDate(date))
	}
	return nil
}
