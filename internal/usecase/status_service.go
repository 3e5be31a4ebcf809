package usecase

import (
	"context"
	"time"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
	"github.com/mlb-tools/roster-watch/internal/platform/logging"
)

// Transaction type codes that only occur for players who held a spot on the
// major-league roster.
var mlbRosterCodes = map[string]struct{}{
	transaction.TypeStatusChange:     {},
	transaction.TypeRecalled:         {},
	transaction.TypeReleased:         {},
	transaction.TypeDesignated:       {},
	transaction.TypeFreeAgentSigning: {},
	transaction.TypeWaiverClaim:      {},
}

// DefaultAffiliateNames are the organization's minor-league club names used
// to tell a big-league call-up from an intra-system shuffle. Overridable in
// config so the list is not baked into code paths.
var DefaultAffiliateNames = []string{
	"Toledo Mud Hens",
	"Lakeland Flying Tigers",
}

// PlayerStatus is one row of the status board.
type PlayerStatus struct {
	PlayerID        int64                 `json:"playerId"`
	PlayerName      string                `json:"playerName"`
	Position        string                `json:"position,omitempty"`
	Status          string                `json:"status,omitempty"`
	IsActive        bool                  `json:"isActive"`
	WasOnMLBRoster  bool                  `json:"wasOnMLBRoster"`
	LastTransaction *AnnotatedTransaction `json:"lastTransaction,omitempty"`
}

// StatusBoard groups every player seen this season by their current
// standing with the club.
type StatusBoard struct {
	AsOf          string         `json:"asOf"`
	Active        []PlayerStatus `json:"active"`
	InactiveMLB   []PlayerStatus `json:"inactiveMlb"`
	InactiveMinor []PlayerStatus `json:"inactiveMinor"`
}

// StatusService assembles the player status board from today's roster plus
// the season-to-date transaction log.
type StatusService struct {
	rosters    *RosterService
	timelines  *TimelineService
	teamID     int64
	affiliates map[string]struct{}
	logger     *logging.Logger
	now        func() time.Time
}

func NewStatusService(rosters *RosterService, timelines *TimelineService, teamID int64, affiliateNames []string, logger *logging.Logger) *StatusService {
	if logger == nil {
		logger = logging.Default()
	}
	if len(affiliateNames) == 0 {
		affiliateNames = DefaultAffiliateNames
	}

	affiliates := make(map[string]struct{}, len(affiliateNames))
	for _, name := range affiliateNames {
		affiliates[name] = struct{}{}
	}

	return &StatusService{
		rosters:    rosters,
		timelines:  timelines,
		teamID:     teamID,
		affiliates: affiliates,
		logger:     logger,
		now:        time.Now,
	}
}

// Board builds the status board as of today. Roster data is load-bearing;
// the transaction log is enrichment and may be empty when the upstream is
// degraded.
func (s *StatusService) Board(ctx context.Context) (StatusBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "StatusService.Board")
	defer span.End()

	today := roster.Day(s.now())
	seasonStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	snapshot, err := s.rosters.RosterForDate(ctx, today)
	if err != nil {
		return StatusBoard{}, err
	}

	txns, err := s.timelines.TeamTransactions(ctx, seasonStart, today)
	if err != nil {
		s.logger.WarnContext(ctx, "status board built without transaction history", "error", err)
		txns = nil
	}

	// Newest-first per player; the provider list is already date-descending.
	byPlayer := make(map[int64][]AnnotatedTransaction, len(txns))
	for _, txn := range txns {
		byPlayer[txn.Person.ID] = append(byPlayer[txn.Person.ID], txn)
	}

	board := StatusBoard{
		AsOf:          roster.FormatDate(today),
		Active:        make([]PlayerStatus, 0, len(snapshot.Entries)),
		InactiveMLB:   []PlayerStatus{},
		InactiveMinor: []PlayerStatus{},
	}

	onRoster := snapshot.ByID()
	for _, entry := range snapshot.Entries {
		board.Active = append(board.Active, PlayerStatus{
			PlayerID:        entry.Person.ID,
			PlayerName:      entry.Person.FullName,
			Position:        entry.Position.Name,
			Status:          entry.Status.Description,
			IsActive:        true,
			WasOnMLBRoster:  true,
			LastTransaction: latest(byPlayer[entry.Person.ID]),
		})
	}

	for _, txn := range txns {
		playerID := txn.Person.ID
		if _, active := onRoster[playerID]; active {
			continue
		}
		if _, seen := byPlayer[playerID]; !seen {
			continue
		}

		history := byPlayer[playerID]
		delete(byPlayer, playerID)

		row := PlayerStatus{
			PlayerID:        playerID,
			PlayerName:      txn.Person.FullName,
			IsActive:        false,
			WasOnMLBRoster:  s.wasOnMLBRoster(history),
			LastTransaction: latest(history),
		}
		if row.WasOnMLBRoster {
			board.InactiveMLB = append(board.InactiveMLB, row)
		} else {
			board.InactiveMinor = append(board.InactiveMinor, row)
		}
	}

	return board, nil
}

// wasOnMLBRoster reports whether any recorded move implies time on the
// major-league roster: either a type code that only applies to rostered
// players, or a move into the club from outside its own farm system.
func (s *StatusService) wasOnMLBRoster(history []AnnotatedTransaction) bool {
	for _, txn := range history {
		if _, ok := mlbRosterCodes[txn.TypeCode]; ok {
			return true
		}
		if txn.ToTeam != nil && txn.ToTeam.ID == s.teamID {
			if txn.FromTeam == nil {
				return true
			}
			if _, affiliate := s.affiliates[txn.FromTeam.Name]; !affiliate {
				return true
			}
		}
	}
	return false
}

func latest(history []AnnotatedTransaction) *AnnotatedTransaction {
	if len(history) == 0 {
		return nil
	}
	first := history[0]
	return &first
}
