package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownCodes(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{TypeStatusChange, CategoryInjury, SeverityHigh},
		{TypeTrade, CategoryTrade, SeverityHigh},
		{TypeOptioned, CategoryOption, SeverityMedium},
		{TypeRecalled, CategoryOption, SeverityMedium},
		{TypeReleased, CategoryRelease, SeverityHigh},
		{TypeDesignated, CategoryAssignment, SeverityHigh},
		{TypeOutrighted, CategoryAssignment, SeverityMedium},
		{TypeFreeAgentSigning, CategorySigning, SeverityLow},
		{TypeWaiverClaim, CategorySigning, SeverityLow},
		{TypeAssigned, CategoryAssignment, SeverityLow},
		{TypeNumberChange, CategoryOther, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c := Classify(tt.code)
			assert.Equal(t, tt.category, c.Category)
			assert.Equal(t, tt.severity, c.Severity)
			assert.NotEmpty(t, c.Icon)
		})
	}
}

func TestClassifyUnknownCodeFallsBack(t *testing.T) {
	c := Classify("ZZZ")
	assert.Equal(t, CategoryOther, c.Category)
	assert.Equal(t, SeverityLow, c.Severity)

	assert.Equal(t, Classify(""), c)
}

func TestFormatDescriptionPrefersProviderText(t *testing.T) {
	d := Detail{
		Person:      PersonRef{ID: 1, FullName: "Tarik Skubal"},
		TypeCode:    TypeStatusChange,
		Description: "Detroit Tigers placed LHP Tarik Skubal on the 15-day injured list.",
	}

	assert.Equal(t, d.Description, FormatDescription(d))
}

func TestFormatDescriptionTemplates(t *testing.T) {
	toledo := &TeamRef{ID: 512, Name: "Toledo Mud Hens"}

	tests := []struct {
		name   string
		detail Detail
		want   string
	}{
		{
			name:   "status change",
			detail: Detail{Person: PersonRef{FullName: "Riley Greene"}, TypeCode: TypeStatusChange},
			want:   "Riley Greene placed on injured list",
		},
		{
			name:   "recalled with team",
			detail: Detail{Person: PersonRef{FullName: "Parker Meadows"}, TypeCode: TypeRecalled, FromTeam: toledo},
			want:   "Parker Meadows recalled from Toledo Mud Hens",
		},
		{
			name:   "recalled without team",
			detail: Detail{Person: PersonRef{FullName: "Parker Meadows"}, TypeCode: TypeRecalled},
			want:   "Parker Meadows recalled from minors",
		},
		{
			name:   "optioned with team",
			detail: Detail{Person: PersonRef{FullName: "Jace Jung"}, TypeCode: TypeOptioned, ToTeam: toledo},
			want:   "Jace Jung optioned to Toledo Mud Hens",
		},
		{
			name:   "released",
			detail: Detail{Person: PersonRef{FullName: "Mark Canha"}, TypeCode: TypeReleased},
			want:   "Mark Canha released",
		},
		{
			name:   "designated",
			detail: Detail{Person: PersonRef{FullName: "Andrew Chafin"}, TypeCode: TypeDesignated},
			want:   "Andrew Chafin designated for assignment",
		},
		{
			name:   "outrighted without team",
			detail: Detail{Person: PersonRef{FullName: "Ryan Kreidler"}, TypeCode: TypeOutrighted},
			want:   "Ryan Kreidler outrighted to minors",
		},
		{
			name:   "unknown code uses type description",
			detail: Detail{Person: PersonRef{FullName: "Zach McKinstry"}, TypeCode: "ZZZ", TypeDesc: "Mystery Move"},
			want:   "Zach McKinstry - Mystery Move",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDescription(tt.detail))
		})
	}
}

func TestDetailValid(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	valid := Detail{Person: PersonRef{ID: 669373, FullName: "Tarik Skubal"}, Date: date}
	require.True(t, valid.Valid())

	assert.False(t, Detail{Person: PersonRef{ID: 0, FullName: "No ID"}, Date: date}.Valid())
	assert.False(t, Detail{Person: PersonRef{ID: 1}, Date: date}.Valid())
	assert.False(t, Detail{Person: PersonRef{ID: 1, FullName: "No Date"}}.Valid())
}

func TestSummarize(t *testing.T) {
	d1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	txns := []PlayerTransaction{
		{PlayerID: 1, PlayerName: "A", Type: "added", Date: d2},
		{PlayerID: 2, PlayerName: "B", Type: "removed", Date: d1},
		{PlayerID: 3, PlayerName: "C", Type: "added", Date: d1},
		{PlayerID: 1, PlayerName: "A", Type: "removed", Date: d1},
	}

	stats := Summarize(txns)
	assert.Equal(t, 2, stats.TotalAdded)
	assert.Equal(t, 2, stats.TotalRemoved)
	assert.Equal(t, 3, stats.UniquePlayers)
	// d1 has three transactions, d2 one.
	assert.Equal(t, "2025-06-01", stats.MostActiveDate)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.TotalAdded)
	assert.Zero(t, stats.TotalRemoved)
	assert.Zero(t, stats.UniquePlayers)
	assert.Empty(t, stats.MostActiveDate)
}
