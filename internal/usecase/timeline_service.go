package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
	"github.com/mlb-tools/roster-watch/internal/platform/cache"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

const defaultSampleDelay = 100 * time.Millisecond

// AnnotatedTransaction is a provider transaction enriched with its display
// classification.
type AnnotatedTransaction struct {
	transaction.Detail
	Category transaction.Category `json:"category"`
	Severity transaction.Severity `json:"severity"`
	Icon     string               `json:"icon"`
	Display  string               `json:"display"`
}

// TimelineService builds roster-change views by walking snapshots across a
// date window. Walks are strictly sequential: each step diffs against the
// last good snapshot, and a courtesy delay spaces out upstream calls.
type TimelineService struct {
	rosters     *RosterService
	provider    StatsProvider
	store       *cache.Store
	logger      *logging.Logger
	sampleDelay time.Duration
}

func NewTimelineService(rosters *RosterService, provider StatsProvider, store *cache.Store, logger *logging.Logger, sampleDelay time.Duration) *TimelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if sampleDelay < 0 {
		sampleDelay = defaultSampleDelay
	}

	return &TimelineService{
		rosters:     rosters,
		provider:    provider,
		store:       store,
		logger:      logger,
		sampleDelay: sampleDelay,
	}
}

// ChangesTimeline compares week-apart snapshot pairs across the window and
// returns the comparisons that contain at least one change, in
// chronological order. A failed pair is skipped, not fatal.
func (s *TimelineService) ChangesTimeline(ctx context.Context, start, end time.Time) ([]roster.Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "TimelineService.ChangesTimeline")
	defer span.End()

	start, end = roster.Day(start), roster.Day(end)
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}

	samples := sampleDates(start, end, 7*24*time.Hour)
	out := make([]roster.Comparison, 0, len(samples))
	for i := 1; i < len(samples); i++ {
		comparison, err := s.rosters.CompareRosters(ctx, samples[i-1], samples[i])
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.WarnContext(ctx, "skipping failed comparison pair",
				"from", roster.FormatDate(samples[i-1]),
				"to", roster.FormatDate(samples[i]),
				"error", err)
			continue
		}
		if comparison.HasChanges() {
			out = append(out, comparison)
		}
	}

	return out, nil
}

// TransactionHistory walks the window at an adaptive sampling step and
// derives per-player added/removed moves from consecutive snapshot diffs.
// Failed samples are skipped without resetting the diff baseline.
func (s *TimelineService) TransactionHistory(ctx context.Context, start, end time.Time) (transaction.Timeline, error) {
	ctx, span := startUsecaseSpan(ctx, "TimelineService.TransactionHistory")
	defer span.End()

	start, end = roster.Day(start), roster.Day(end)
	if err := s.validateRange(start, end); err != nil {
		return transaction.Timeline{}, err
	}

	samples := sampleDates(start, end, sampleStep(start, end))

	var (
		txns     []transaction.PlayerTransaction
		previous roster.Snapshot
		prevSet  bool
	)

	for i, date := range samples {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return transaction.Timeline{}, err
			}
		}

		snapshot, err := s.rosters.RosterForDate(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return transaction.Timeline{}, ctx.Err()
			}
			s.logger.WarnContext(ctx, "skipping failed timeline sample",
				"date", roster.FormatDate(date), "error", err)
			continue
		}

		if prevSet {
			txns = append(txns, deriveMoves(previous, snapshot, date)...)
		}
		previous = snapshot
		prevSet = true
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})

	return transaction.Timeline{
		Transactions: txns,
		DateRange:    transaction.DateRange{Start: start, End: end},
		TotalChanges: len(txns),
	}, nil
}

// PlayerHistory is the cached per-player slice of a full window walk.
func (s *TimelineService) PlayerHistory(ctx context.Context, playerID int64, start, end time.Time) (transaction.Timeline, error) {
	ctx, span := startUsecaseSpan(ctx, "TimelineService.PlayerHistory")
	defer span.End()

	if playerID <= 0 {
		return transaction.Timeline{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	start, end = roster.Day(start), roster.Day(end)
	if err := s.validateRange(start, end); err != nil {
		return transaction.Timeline{}, err
	}

	key := cache.PlayerHistoryKey{
		PlayerID: playerID,
		Start:    roster.FormatDate(start),
		End:      roster.FormatDate(end),
	}

	return cache.Lookup(ctx, s.store, key, func(ctx context.Context) (transaction.Timeline, error) {
		full, err := s.TransactionHistory(ctx, start, end)
		if err != nil {
			return transaction.Timeline{}, err
		}

		filtered := make([]transaction.PlayerTransaction, 0, 8)
		for _, txn := range full.Transactions {
			if txn.PlayerID == playerID {
				filtered = append(filtered, txn)
			}
		}

		return transaction.Timeline{
			Transactions: filtered,
			DateRange:    full.DateRange,
			TotalChanges: len(filtered),
		}, nil
	})
}

// TeamTransactions returns the club's provider-reported transactions in the
// window, classified for display. Successful fetches are cached under the
// transactions TTL; an upstream failure degrades to an uncached empty list.
func (s *TimelineService) TeamTransactions(ctx context.Context, start, end time.Time) ([]AnnotatedTransaction, error) {
	ctx, span := startUsecaseSpan(ctx, "TimelineService.TeamTransactions")
	defer span.End()

	start, end = roster.Day(start), roster.Day(end)
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}

	key := cache.TransactionsKey{Start: roster.FormatDate(start), End: roster.FormatDate(end)}
	details, err := cache.Lookup(ctx, s.store, key, func(ctx context.Context) ([]transaction.Detail, error) {
		return s.provider.TeamTransactions(ctx, start, end)
	})
	if err != nil {
		// Serve empty without caching so the next call retries upstream.
		s.logger.WarnContext(ctx, "team transactions unavailable",
			"start", roster.FormatDate(start), "end", roster.FormatDate(end), "error", err)
		return []AnnotatedTransaction{}, nil
	}

	return annotate(details), nil
}

// PlayerTransactions is TeamTransactions scoped to one player.
func (s *TimelineService) PlayerTransactions(ctx context.Context, playerID int64, start, end time.Time) ([]AnnotatedTransaction, error) {
	ctx, span := startUsecaseSpan(ctx, "TimelineService.PlayerTransactions")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	start, end = roster.Day(start), roster.Day(end)
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}

	key := cache.TransactionsKey{
		Start:    roster.FormatDate(start),
		End:      roster.FormatDate(end),
		PlayerID: playerID,
	}
	details, err := cache.Lookup(ctx, s.store, key, func(ctx context.Context) ([]transaction.Detail, error) {
		return s.provider.PlayerTransactions(ctx, playerID, start, end)
	})
	if err != nil {
		// Serve empty without caching so the next call retries upstream.
		s.logger.WarnContext(ctx, "player transactions unavailable",
			"player_id", playerID, "error", err)
		return []AnnotatedTransaction{}, nil
	}

	return annotate(details), nil
}

func (s *TimelineService) validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidInput, roster.FormatDate(start), roster.FormatDate(end))
	}
	return nil
}

func (s *TimelineService) pause(ctx context.Context) error {
	if s.sampleDelay == 0 {
		return nil
	}

	timer := time.NewTimer(s.sampleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sampleStep picks the walk granularity: daily for windows up to two weeks,
// every three days up to two months, weekly beyond that.
func sampleStep(start, end time.Time) time.Duration {
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days <= 14:
		return 24 * time.Hour
	case days <= 60:
		return 3 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// sampleDates generates start, start+step, ... and guarantees end is the
// final sample.
func sampleDates(start, end time.Time, step time.Duration) []time.Time {
	out := make([]time.Time, 0, int(end.Sub(start)/step)+2)
	for date := start; !date.After(end); date = date.Add(step) {
		out = append(out, date)
	}
	if len(out) == 0 || !out[len(out)-1].Equal(end) {
		out = append(out, end)
	}
	return out
}

// deriveMoves emits synthetic transactions for players entering or leaving
// the roster between the previous good snapshot and the current one.
// Ordering follows the snapshots, so output is deterministic ahead of the
// final date sort.
func deriveMoves(previous, current roster.Snapshot, date time.Time) []transaction.PlayerTransaction {
	moves := make([]transaction.PlayerTransaction, 0, 4)
	previousByID := previous.ByID()
	currentByID := current.ByID()

	for _, entry := range current.Entries {
		if _, ok := previousByID[entry.Person.ID]; ok {
			continue
		}
		moves = append(moves, transaction.PlayerTransaction{
			PlayerID:     entry.Person.ID,
			PlayerName:   entry.Person.FullName,
			JerseyNumber: entry.JerseyNumber,
			Position:     entry.Position.Name,
			Type:         transaction.DirectionAdded,
			Date:         date,
			NewStatus:    entry.Status.Description,
		})
	}

	for _, entry := range previous.Entries {
		if _, ok := currentByID[entry.Person.ID]; ok {
			continue
		}
		moves = append(moves, transaction.PlayerTransaction{
			PlayerID:       entry.Person.ID,
			PlayerName:     entry.Person.FullName,
			JerseyNumber:   entry.JerseyNumber,
			Position:       entry.Position.Name,
			Type:           transaction.DirectionRemoved,
			Date:           date,
			PreviousStatus: entry.Status.Description,
		})
	}

	return moves
}

func annotate(details []transaction.Detail) []AnnotatedTransaction {
	out := make([]AnnotatedTransaction, 0, len(details))
	for _, detail := range details {
		classification := transaction.Classify(detail.TypeCode)
		out = append(out, AnnotatedTransaction{
			Detail:   detail,
			Category: classification.Category,
			Severity: classification.Severity,
			Icon:     classification.Icon,
			Display:  transaction.FormatDescription(detail),
		})
	}
	return out
}
