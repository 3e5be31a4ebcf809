package statsapi

import (
	"strings"
	"time"

	"github.com/mlb-tools/roster-watch/internal/domain/roster"
	"github.com/mlb-tools/roster-watch/internal/domain/transaction"
)

type rosterEnvelope struct {
	Roster []rosterItem `json:"roster"`
}

type rosterItem struct {
	Person       personRef `json:"person"`
	JerseyNumber string    `json:"jerseyNumber"`
	Position     position  `json:"position"`
	Status       status    `json:"status"`
}

type personRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type position struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Abbreviation string `json:"abbreviation"`
}

type status struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type transactionsEnvelope struct {
	Transactions []transactionItem `json:"transactions"`
}

type transactionItem struct {
	ID             int64     `json:"id"`
	Person         personRef `json:"person"`
	Date           string    `json:"date"`
	EffectiveDate  string    `json:"effectiveDate"`
	ResolutionDate string    `json:"resolutionDate"`
	TypeCode       string    `json:"typeCode"`
	TypeDesc       string    `json:"typeDesc"`
	Description    string    `json:"description"`
	FromTeam       *teamRef  `json:"fromTeam"`
	ToTeam         *teamRef  `json:"toTeam"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type peopleEnvelope struct {
	People []personItem `json:"people"`
}

type personItem struct {
	ID              int64    `json:"id"`
	FullName        string   `json:"fullName"`
	PrimaryNumber   string   `json:"primaryNumber"`
	BirthDate       string   `json:"birthDate"`
	CurrentAge      int      `json:"currentAge"`
	Height          string   `json:"height"`
	Weight          int      `json:"weight"`
	Active          bool     `json:"active"`
	PrimaryPosition position `json:"primaryPosition"`
	BatSide         codeDesc `json:"batSide"`
	PitchHand       codeDesc `json:"pitchHand"`
	MLBDebutDate    string   `json:"mlbDebutDate"`
}

type codeDesc struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func mapRosterEntry(item rosterItem) roster.Entry {
	return roster.Entry{
		Person: roster.Person{
			ID:       item.Person.ID,
			FullName: strings.TrimSpace(item.Person.FullName),
		},
		JerseyNumber: strings.TrimSpace(item.JerseyNumber),
		Position: roster.Position{
			Code:         item.Position.Code,
			Name:         item.Position.Name,
			Type:         item.Position.Type,
			Abbreviation: item.Position.Abbreviation,
		},
		Status: roster.Status{
			Code:        item.Status.Code,
			Description: item.Status.Description,
		},
	}
}

func mapTransaction(item transactionItem) transaction.Detail {
	return transaction.Detail{
		ID: item.ID,
		Person: transaction.PersonRef{
			ID:       item.Person.ID,
			FullName: strings.TrimSpace(item.Person.FullName),
		},
		Date:           parseCivilDate(item.Date),
		EffectiveDate:  parseCivilDatePtr(item.EffectiveDate),
		ResolutionDate: parseCivilDatePtr(item.ResolutionDate),
		TypeCode:       item.TypeCode,
		TypeDesc:       item.TypeDesc,
		Description:    strings.TrimSpace(item.Description),
		FromTeam:       mapTeamRef(item.FromTeam),
		ToTeam:         mapTeamRef(item.ToTeam),
	}
}

func mapTeamRef(ref *teamRef) *transaction.TeamRef {
	if ref == nil {
		return nil
	}
	return &transaction.TeamRef{ID: ref.ID, Name: ref.Name}
}

func mapPlayerDetails(item personItem) roster.PlayerDetails {
	return roster.PlayerDetails{
		ID:            item.ID,
		FullName:      strings.TrimSpace(item.FullName),
		PrimaryNumber: item.PrimaryNumber,
		BirthDate:     item.BirthDate,
		CurrentAge:    item.CurrentAge,
		Height:        item.Height,
		Weight:        item.Weight,
		PrimaryPosition: roster.Position{
			Code:         item.PrimaryPosition.Code,
			Name:         item.PrimaryPosition.Name,
			Type:         item.PrimaryPosition.Type,
			Abbreviation: item.PrimaryPosition.Abbreviation,
		},
		BatSide:      item.BatSide.Description,
		PitchHand:    item.PitchHand.Description,
		MLBDebutDate: item.MLBDebutDate,
		Active:       item.Active,
	}
}

func parseCivilDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(roster.DateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseCivilDatePtr(value string) *time.Time {
	parsed := parseCivilDate(value)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}
