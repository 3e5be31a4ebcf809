package cache

import "fmt"

// Category selects the TTL policy applied to an entry.
type Category string

const (
	CategoryRoster        Category = "roster"
	CategoryTransactions  Category = "transactions"
	CategoryPlayerHistory Category = "playerHistory"
)

// Key identifies a cache entry and the category whose TTL governs it.
type Key interface {
	CacheKey() string
	Category() Category
}

// RosterKey addresses the active-roster snapshot for one civil date.
type RosterKey struct {
	Date string
}

func (k RosterKey) CacheKey() string   { return "roster-" + k.Date }
func (k RosterKey) Category() Category { return CategoryRoster }

// TransactionsKey addresses a provider transaction window. PlayerID zero
// means the whole club; nonzero scopes the window to one player.
type TransactionsKey struct {
	Start    string
	End      string
	PlayerID int64
}

func (k TransactionsKey) CacheKey() string {
	if k.PlayerID > 0 {
		return fmt.Sprintf("player-transactions-%d-%s-%s", k.PlayerID, k.Start, k.End)
	}
	return fmt.Sprintf("transactions-%s-%s", k.Start, k.End)
}

func (k TransactionsKey) Category() Category { return CategoryTransactions }

// PlayerKey addresses one player's biographical record. Bio data moves on
// the same cadence as rosters, so it shares the roster TTL.
type PlayerKey struct {
	PlayerID int64
}

func (k PlayerKey) CacheKey() string   { return fmt.Sprintf("player-%d", k.PlayerID) }
func (k PlayerKey) Category() Category { return CategoryRoster }

// PlayerHistoryKey addresses the assembled roster history for one player
// over one window.
type PlayerHistoryKey struct {
	PlayerID int64
	Start    string
	End      string
}

func (k PlayerHistoryKey) CacheKey() string {
	return fmt.Sprintf("player-history-%d-%s-%s", k.PlayerID, k.Start, k.End)
}

func (k PlayerHistoryKey) Category() Category { return CategoryPlayerHistory }
