package httpapi

import (
	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
	"github.com/mlb-tools/roster-watch/internal/usecase"
)

type rosterDTO struct {
	Date    string         `json:"date"`
	Count   int            `json:"count"`
	Entries []roster.Entry `json:"entries"`
}

func newRosterDTO(snapshot roster.Snapshot) rosterDTO {
	return rosterDTO{
		Date:    roster.FormatDate(snapshot.Date),
		Count:   len(snapshot.Entries),
		Entries: snapshot.Entries,
	}
}

type positionChangeDTO struct {
	Player           roster.Entry `json:"player"`
	PreviousPosition string       `json:"previousPosition"`
	NewPosition      string       `json:"newPosition"`
}

type comparisonDTO struct {
	FromDate        string              `json:"fromDate"`
	ToDate          string              `json:"toDate"`
	Added           []roster.Entry      `json:"added"`
	Removed         []roster.Entry      `json:"removed"`
	PositionChanges []positionChangeDTO `json:"positionChanges"`
	TotalChanges    int                 `json:"totalChanges"`
}

func newComparisonDTO(comparison roster.Comparison) comparisonDTO {
	changes := make([]positionChangeDTO, 0, len(comparison.PositionChanges))
	for _, change := range comparison.PositionChanges {
		changes = append(changes, positionChangeDTO{
			Player:           change.Player,
			PreviousPosition: change.PreviousPosition,
			NewPosition:      change.NewPosition,
		})
	}

	return comparisonDTO{
		FromDate:        roster.FormatDate(comparison.FromDate),
		ToDate:          roster.FormatDate(comparison.ToDate),
		Added:           emptyIfNil(comparison.Added),
		Removed:         emptyIfNil(comparison.Removed),
		PositionChanges: changes,
		TotalChanges:    comparison.TotalChanges(),
	}
}

type dateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type playerTransactionDTO struct {
	PlayerID       int64  `json:"playerId"`
	PlayerName     string `json:"playerName"`
	JerseyNumber   string `json:"jerseyNumber,omitempty"`
	Position       string `json:"position"`
	Type           string `json:"transactionType"`
	Date           string `json:"date"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
}

type detailedTimelineDTO struct {
	Transactions []playerTransactionDTO    `json:"transactions"`
	DateRange    dateRangeDTO              `json:"dateRange"`
	TotalChanges int                       `json:"totalChanges"`
	Stats        transaction.TimelineStats `json:"stats"`
}

func newDetailedTimelineDTO(timeline transaction.Timeline) detailedTimelineDTO {
	items := make([]playerTransactionDTO, 0, len(timeline.Transactions))
	for _, txn := range timeline.Transactions {
		items = append(items, playerTransactionDTO{
			PlayerID:       txn.PlayerID,
			PlayerName:     txn.PlayerName,
			JerseyNumber:   txn.JerseyNumber,
			Position:       txn.Position,
			Type:           string(txn.Type),
			Date:           roster.FormatDate(txn.Date),
			PreviousStatus: txn.PreviousStatus,
			NewStatus:      txn.NewStatus,
		})
	}

	return detailedTimelineDTO{
		Transactions: items,
		DateRange: dateRangeDTO{
			Start: roster.FormatDate(timeline.DateRange.Start),
			End:   roster.FormatDate(timeline.DateRange.End),
		},
		TotalChanges: timeline.TotalChanges,
		Stats:        transaction.Summarize(timeline.Transactions),
	}
}

type changesTimelineDTO struct {
	Comparisons []comparisonDTO `json:"comparisons"`
	DateRange   dateRangeDTO    `json:"dateRange"`
	Count       int             `json:"count"`
}

type transactionListDTO struct {
	Transactions []usecase.AnnotatedTransaction `json:"transactions"`
	DateRange    dateRangeDTO                   `json:"dateRange"`
	Count        int                            `json:"count"`
}

func emptyIfNil(entries []roster.Entry) []roster.Entry {
	if entries == nil {
		return []roster.Entry{}
	}
	return entries
}
