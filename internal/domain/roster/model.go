package roster

import (
	"fmt"
	"time"
)

// DateLayout is the civil-date format used by the stats provider.
const DateLayout = "2006-01-02"

// Position describes where a player slots on the field.
type Position struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Abbreviation string `json:"abbreviation"`
}

// Status is the provider's roster-status designation (active, injured list, ...).
type Status struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Person identifies a player. ID is stable across snapshots.
type Person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Entry is one player's slot on a roster snapshot.
type Entry struct {
	Person       Person   `json:"person"`
	JerseyNumber string   `json:"jerseyNumber,omitempty"`
	Position     Position `json:"position"`
	Status       Status   `json:"status"`
}

func (e Entry) Validate() error {
	if e.Person.ID <= 0 {
		return fmt.Errorf("roster entry person id is required")
	}
	if e.Person.FullName == "" {
		return fmt.Errorf("roster entry person name is required")
	}

	return nil
}

// Snapshot is the full roster as of one date. Entry order is the provider's
// order and is preserved through comparisons.
type Snapshot struct {
	Date    time.Time `json:"date"`
	Entries []Entry   `json:"entries"`
}

// ByID indexes the snapshot's entries by player id. Within one snapshot a
// player id appears at most once.
func (s Snapshot) ByID() map[int64]Entry {
	out := make(map[int64]Entry, len(s.Entries))
	for _, entry := range s.Entries {
		out[entry.Person.ID] = entry
	}

	return out
}

// Day truncates a timestamp to its UTC civil date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse roster date %q: %w", raw, err)
	}

	return parsed.UTC(), nil
}

// FormatDate renders a timestamp as the provider's civil-date string.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
