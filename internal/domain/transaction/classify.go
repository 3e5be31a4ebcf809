package transaction

import "fmt"

// Category is the semantic bucket a transaction type maps to.
type Category string

const (
	CategoryInjury     Category = "injury"
	CategoryTrade      Category = "trade"
	CategoryOption     Category = "option"
	CategoryRelease    Category = "release"
	CategoryAssignment Category = "assignment"
	CategorySigning    Category = "signing"
	CategoryOther      Category = "other"
)

// Severity ranks how disruptive a move is to the roster.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Classification is the display mapping for one transaction type code.
type Classification struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Icon     string   `json:"icon"`
}

var classifications = map[string]Classification{
	TypeStatusChange:     {CategoryInjury, SeverityHigh, "🏥"},
	TypeTrade:            {CategoryTrade, SeverityHigh, "🔄"},
	TypeOptioned:         {CategoryOption, SeverityMedium, "⬇️"},
	TypeRecalled:         {CategoryOption, SeverityMedium, "⬆️"},
	TypeReleased:         {CategoryRelease, SeverityHigh, "❌"},
	TypeDesignated:       {CategoryAssignment, SeverityHigh, "🎯"},
	TypeOutrighted:       {CategoryAssignment, SeverityMedium, "📤"},
	TypeFreeAgentSigning: {CategorySigning, SeverityLow, "✍️"},
	TypeWaiverClaim:      {CategorySigning, SeverityLow, "🎣"},
	TypeAssigned:         {CategoryAssignment, SeverityLow, "📝"},
	TypeNumberChange:     {CategoryOther, SeverityLow, "🔢"},
}

var defaultClassification = Classification{CategoryOther, SeverityLow, "📋"}

// Classify maps a raw provider type code to its display classification.
// Unknown codes fall back to {other, low}.
func Classify(typeCode string) Classification {
	if c, ok := classifications[typeCode]; ok {
		return c
	}

	return defaultClassification
}

// FormatDescription returns the provider's own description when present,
// otherwise a templated sentence built from the record's fields.
func FormatDescription(d Detail) string {
	if d.Description != "" {
		return d.Description
	}

	switch d.TypeCode {
	case TypeStatusChange:
		return fmt.Sprintf("%s placed on injured list", d.Person.FullName)
	case TypeRecalled:
		return fmt.Sprintf("%s recalled from %s", d.Person.FullName, teamNameOr(d.FromTeam, "minors"))
	case TypeOptioned:
		return fmt.Sprintf("%s optioned to %s", d.Person.FullName, teamNameOr(d.ToTeam, "minors"))
	case TypeReleased:
		return fmt.Sprintf("%s released", d.Person.FullName)
	case TypeDesignated:
		return fmt.Sprintf("%s designated for assignment", d.Person.FullName)
	case TypeOutrighted:
		return fmt.Sprintf("%s outrighted to %s", d.Person.FullName, teamNameOr(d.ToTeam, "minors"))
	default:
		return fmt.Sprintf("%s - %s", d.Person.FullName, d.TypeDesc)
	}
}

func teamNameOr(team *TeamRef, fallback string) string {
	if team == nil || team.Name == "" {
		return fallback
	}

	return team.Name
}
