package usecase

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

type stubProvider struct {
	mu sync.Mutex

	rosters     map[string]roster.Snapshot
	rosterErrs  map[string]error
	rosterCalls map[string]int

	teamTxns      []transaction.Detail
	teamTxnsErr   error
	teamTxnsCalls int
	playerTxns    map[int64][]transaction.Detail
	playerTxnsErr error

	details map[int64]roster.PlayerDetails
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		rosters:     make(map[string]roster.Snapshot),
		rosterErrs:  make(map[string]error),
		rosterCalls: make(map[string]int),
		playerTxns:  make(map[int64][]transaction.Detail),
		details:     make(map[int64]roster.PlayerDetails),
	}
}

func (p *stubProvider) TeamID() int64 { return 116 }

func (p *stubProvider) RosterForDate(_ context.Context, date time.Time) (roster.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	day := roster.FormatDate(date)
	p.rosterCalls[day]++
	if err, ok := p.rosterErrs[day]; ok {
		return roster.Snapshot{}, err
	}
	if snap, ok := p.rosters[day]; ok {
		return snap, nil
	}
	return roster.Snapshot{}, errors.Newf("no stub roster for %s", day)
}

func (p *stubProvider) TeamTransactions(context.Context, time.Time, time.Time) ([]transaction.Detail, error) {
	p.mu.Lock()
	p.teamTxnsCalls++
	p.mu.Unlock()

	if p.teamTxnsErr != nil {
		return nil, p.teamTxnsErr
	}
	return p.teamTxns, nil
}

func (p *stubProvider) PlayerTransactions(_ context.Context, playerID int64, _, _ time.Time) ([]transaction.Detail, error) {
	if p.playerTxnsErr != nil {
		return nil, p.playerTxnsErr
	}
	return p.playerTxns[playerID], nil
}

func (p *stubProvider) PlayerDetails(_ context.Context, playerID int64) (roster.PlayerDetails, error) {
	if details, ok := p.details[playerID]; ok {
		return details, nil
	}
	return roster.PlayerDetails{}, nil
}

func (p *stubProvider) calls(day string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rosterCalls[day]
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()

	db, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := cache.NewStore(db, nil, logging.NewNop())
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func testEntry(id int64, name, posCode, posName string) roster.Entry {
	return roster.Entry{
		Person:   roster.Person{ID: id, FullName: name},
		Position: roster.Position{Code: posCode, Name: posName},
		Status:   roster.Status{Code: "A", Description: "Active"},
	}
}

func day(value string) time.Time {
	parsed, err := roster.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return parsed
}
