package roster

import "time"

// PositionChange records a player present in both snapshots whose position
// code changed. Player carries the newer snapshot's entry.
type PositionChange struct {
	Player           Entry  `json:"player"`
	PreviousPosition string `json:"previousPosition"`
	NewPosition      string `json:"newPosition"`
}

// Comparison is the structured difference between two roster snapshots.
// A player id appears in at most one of Added, Removed, PositionChanges.
type Comparison struct {
	FromDate        time.Time        `json:"fromDate"`
	ToDate          time.Time        `json:"toDate"`
	Added           []Entry          `json:"added"`
	Removed         []Entry          `json:"removed"`
	PositionChanges []PositionChange `json:"positionChanges"`
}

func (c Comparison) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Removed) > 0 || len(c.PositionChanges) > 0
}

// TotalChanges counts every recorded difference.
func (c Comparison) TotalChanges() int {
	return len(c.Added) + len(c.Removed) + len(c.PositionChanges)
}

// Diff compares two snapshots by player id.
//
// Added players come out in to-snapshot order, removed players in
// from-snapshot order, and position changes in from-snapshot order; no
// secondary sort is applied. Players present in both snapshots with an
// unchanged position code produce no output.
func Diff(from, to Snapshot) Comparison {
	fromByID := from.ByID()
	toByID := to.ByID()

	added := make([]Entry, 0)
	for _, entry := range to.Entries {
		if _, ok := fromByID[entry.Person.ID]; !ok {
			added = append(added, entry)
		}
	}

	removed := make([]Entry, 0)
	for _, entry := range from.Entries {
		if _, ok := toByID[entry.Person.ID]; !ok {
			removed = append(removed, entry)
		}
	}

	positionChanges := make([]PositionChange, 0)
	for _, fromEntry := range from.Entries {
		toEntry, ok := toByID[fromEntry.Person.ID]
		if !ok {
			continue
		}
		if fromEntry.Position.Code == toEntry.Position.Code {
			continue
		}
		positionChanges = append(positionChanges, PositionChange{
			Player:           toEntry,
			PreviousPosition: fromEntry.Position.Name,
			NewPosition:      toEntry.Position.Name,
		})
	}

	return Comparison{
		FromDate:        from.Date,
		ToDate:          to.Date,
		Added:           added,
		Removed:         removed,
		PositionChanges: positionChanges,
	}
}
