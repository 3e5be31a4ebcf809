package roster

import (
	"testing"
	"time"
)

func snapshotOn(day int, entries ...Entry) Snapshot {
	return Snapshot{
		Date:    time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		Entries: entries,
	}
}

func entry(id int64, name, posCode, posName string) Entry {
	return Entry{
		Person:   Person{ID: id, FullName: name},
		Position: Position{Code: posCode, Name: posName},
		Status:   Status{Code: "A", Description: "Active"},
	}
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	t.Parallel()

	day1 := snapshotOn(1,
		entry(1, "First Baseman", "3", "First Base"),
		entry(2, "Left Fielder", "7", "Outfielder"),
	)
	day2 := snapshotOn(2,
		entry(1, "First Baseman", "3", "First Base"),
		entry(3, "Reliever", "1", "Pitcher"),
	)

	got := Diff(day1, day2)

	if len(got.Added) != 1 || got.Added[0].Person.ID != 3 {
		t.Fatalf("unexpected added set: %+v", got.Added)
	}
	if len(got.Removed) != 1 || got.Removed[0].Person.ID != 2 {
		t.Fatalf("unexpected removed set: %+v", got.Removed)
	}
	if len(got.PositionChanges) != 0 {
		t.Fatalf("expected no position changes, got %+v", got.PositionChanges)
	}
}

func TestDiff_PositionChangeOnly(t *testing.T) {
	t.Parallel()

	day1 := snapshotOn(1, entry(1, "Utility Man", "4", "Second Base"))
	day2 := snapshotOn(2, entry(1, "Utility Man", "6", "Shortstop"))

	got := Diff(day1, day2)

	if len(got.Added) != 0 || len(got.Removed) != 0 {
		t.Fatalf("expected empty added/removed, got %+v / %+v", got.Added, got.Removed)
	}
	if len(got.PositionChanges) != 1 {
		t.Fatalf("expected one position change, got %d", len(got.PositionChanges))
	}
	change := got.PositionChanges[0]
	if change.Player.Person.ID != 1 {
		t.Fatalf("unexpected player in change: %+v", change.Player)
	}
	if change.PreviousPosition != "Second Base" || change.NewPosition != "Shortstop" {
		t.Fatalf("unexpected change names: %+v", change)
	}
	if change.Player.Position.Code != "6" {
		t.Fatalf("change should carry the newer entry, got %+v", change.Player)
	}
}

func TestDiff_IdenticalSnapshotsAreIdempotent(t *testing.T) {
	t.Parallel()

	snap := snapshotOn(1,
		entry(10, "Catcher", "2", "Catcher"),
		entry(11, "Starter", "1", "Pitcher"),
	)

	got := Diff(snap, snap)
	if got.HasChanges() {
		t.Fatalf("comparing a snapshot to itself should yield no changes: %+v", got)
	}
}

func TestDiff_PartitionsEveryPlayerExactlyOnce(t *testing.T) {
	t.Parallel()

	from := snapshotOn(1,
		entry(1, "Stays Put", "1", "Pitcher"),
		entry(2, "Leaves", "2", "Catcher"),
		entry(3, "Moves", "4", "Second Base"),
	)
	to := snapshotOn(8,
		entry(1, "Stays Put", "1", "Pitcher"),
		entry(3, "Moves", "6", "Shortstop"),
		entry(4, "Arrives", "9", "Outfielder"),
	)

	got := Diff(from, to)

	seen := make(map[int64]string)
	record := func(id int64, bucket string) {
		if prior, ok := seen[id]; ok {
			t.Fatalf("player %d appears in both %s and %s", id, prior, bucket)
		}
		seen[id] = bucket
	}
	for _, e := range got.Added {
		record(e.Person.ID, "added")
	}
	for _, e := range got.Removed {
		record(e.Person.ID, "removed")
	}
	for _, c := range got.PositionChanges {
		record(c.Player.Person.ID, "positionChanges")
	}

	if seen[4] != "added" || seen[2] != "removed" || seen[3] != "positionChanges" {
		t.Fatalf("unexpected partition: %v", seen)
	}
	if _, ok := seen[1]; ok {
		t.Fatalf("unchanged player should appear in no bucket: %v", seen)
	}
	if got.TotalChanges() != 3 {
		t.Fatalf("unexpected total changes: %d", got.TotalChanges())
	}
}

func TestDiff_SymmetryOfAddedAndRemoved(t *testing.T) {
	t.Parallel()

	a := snapshotOn(1,
		entry(1, "One", "1", "Pitcher"),
		entry(2, "Two", "2", "Catcher"),
	)
	b := snapshotOn(2,
		entry(2, "Two", "2", "Catcher"),
		entry(3, "Three", "3", "First Base"),
	)

	forward := Diff(a, b)
	backward := Diff(b, a)

	forwardAdded := map[int64]struct{}{}
	for _, e := range forward.Added {
		forwardAdded[e.Person.ID] = struct{}{}
	}
	for _, e := range backward.Removed {
		if _, ok := forwardAdded[e.Person.ID]; !ok {
			t.Fatalf("player %d removed in reverse diff but not added forward", e.Person.ID)
		}
		delete(forwardAdded, e.Person.ID)
	}
	if len(forwardAdded) != 0 {
		t.Fatalf("forward added ids missing from reverse removed: %v", forwardAdded)
	}
}

func TestDiff_PreservesSnapshotOrder(t *testing.T) {
	t.Parallel()

	from := snapshotOn(1,
		entry(5, "Gone First", "1", "Pitcher"),
		entry(6, "Gone Second", "2", "Catcher"),
	)
	to := snapshotOn(2,
		entry(7, "New First", "3", "First Base"),
		entry(8, "New Second", "4", "Second Base"),
	)

	got := Diff(from, to)

	if got.Added[0].Person.ID != 7 || got.Added[1].Person.ID != 8 {
		t.Fatalf("added order should follow to-snapshot order: %+v", got.Added)
	}
	if got.Removed[0].Person.ID != 5 || got.Removed[1].Person.ID != 6 {
		t.Fatalf("removed order should follow from-snapshot order: %+v", got.Removed)
	}
}
