package usecase

import (
	"context"
	"time"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
)

// StatsProvider is the upstream roster/transaction source. Every read
// reports failure through its error; softening a transaction outage to an
// empty list is a serving-layer decision, made after the cache decides
// whether the result is worth keeping.
type StatsProvider interface {
	TeamID() int64
	RosterForDate(ctx context.Context, date time.Time) (roster.Snapshot, error)
	TeamTransactions(ctx context.Context, start, end time.Time) ([]transaction.Detail, error)
	PlayerTransactions(ctx context.Context, playerID int64, start, end time.Time) ([]transaction.Detail, error)
	PlayerDetails(ctx context.Context, playerID int64) (roster.PlayerDetails, error)
}
