package transaction

import (
	"sort"
	"time"
)

// Provider transaction type codes.
const (
	TypeStatusChange     = "SC"
	TypeTrade            = "TRD"
	TypeOptioned         = "OPT"
	TypeRecalled         = "CU"
	TypeReleased         = "REL"
	TypeDesignated       = "DES"
	TypeOutrighted       = "OUT"
	TypeFreeAgentSigning = "SFA"
	TypeWaiverClaim      = "CLW"
	TypeAssigned         = "ASG"
	TypeNumberChange     = "NUM"
)

// TeamRef identifies a source or destination club on a transaction.
type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PersonRef identifies the player a transaction concerns.
type PersonRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Detail is one transaction record as reported by the stats provider.
// EffectiveDate may differ from Date when a move is backdated.
type Detail struct {
	ID             int64      `json:"id"`
	Person         PersonRef  `json:"person"`
	Date           time.Time  `json:"date"`
	EffectiveDate  *time.Time `json:"effectiveDate,omitempty"`
	ResolutionDate *time.Time `json:"resolutionDate,omitempty"`
	TypeCode       string     `json:"typeCode"`
	TypeDesc       string     `json:"typeDesc"`
	Description    string     `json:"description,omitempty"`
	FromTeam       *TeamRef   `json:"fromTeam,omitempty"`
	ToTeam         *TeamRef   `json:"toTeam,omitempty"`
}

// Valid reports whether the record carries the fields every consumer relies
// on. Invalid records are dropped rather than failing the batch.
func (d Detail) Valid() bool {
	return d.Person.ID > 0 && d.Person.FullName != "" && !d.Date.IsZero()
}

// Direction of a synthetic roster move derived from snapshot diffing.
type Direction string

const (
	DirectionAdded   Direction = "added"
	DirectionRemoved Direction = "removed"
)

// PlayerTransaction is a synthetic roster move observed between two sample
// dates of a timeline walk. It is never mutated after creation.
type PlayerTransaction struct {
	PlayerID       int64     `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	JerseyNumber   string    `json:"jerseyNumber,omitempty"`
	Position       string    `json:"position"`
	Type           Direction `json:"transactionType"`
	Date           time.Time `json:"date"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus,omitempty"`
}

// DateRange is an inclusive civil-date window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Timeline is the collected output of a detailed roster walk, sorted by
// date descending.
type Timeline struct {
	Transactions []PlayerTransaction `json:"transactions"`
	DateRange    DateRange           `json:"dateRange"`
	TotalChanges int                 `json:"totalChanges"`
}

// TimelineStats summarizes a transaction list for display.
type TimelineStats struct {
	MostActiveDate string `json:"mostActiveDate"`
	TotalAdded     int    `json:"totalAdded"`
	TotalRemoved   int    `json:"totalRemoved"`
	UniquePlayers  int    `json:"uniquePlayers"`
}

// GroupByDate buckets transactions by their civil date.
func GroupByDate(items []PlayerTransaction) map[string][]PlayerTransaction {
	out := make(map[string][]PlayerTransaction, len(items))
	for _, item := range items {
		key := item.Date.UTC().Format("2006-01-02")
		out[key] = append(out[key], item)
	}

	return out
}

// Summarize computes display statistics over a transaction list. Ties on the
// busiest date break toward the earlier date so the result is deterministic.
func Summarize(items []PlayerTransaction) TimelineStats {
	byDate := GroupByDate(items)

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	stats := TimelineStats{}
	maxCount := 0
	for _, date := range dates {
		if count := len(byDate[date]); count > maxCount {
			maxCount = count
			stats.MostActiveDate = date
		}
	}

	players := make(map[int64]struct{}, len(items))
	for _, item := range items {
		players[item.PlayerID] = struct{}{}
		switch item.Type {
		case DirectionAdded:
			stats.TotalAdded++
		case DirectionRemoved:
			stats.TotalRemoved++
		}
	}
	stats.UniquePlayers = len(players)

	return stats
}
