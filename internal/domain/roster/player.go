package roster

// PlayerDetails is the provider's biographical record for one player.
type PlayerDetails struct {
	ID              int64    `json:"id"`
	FullName        string   `json:"fullName"`
	PrimaryNumber   string   `json:"primaryNumber,omitempty"`
	BirthDate       string   `json:"birthDate,omitempty"`
	CurrentAge      int      `json:"currentAge,omitempty"`
	Height          string   `json:"height,omitempty"`
	Weight          int      `json:"weight,omitempty"`
	PrimaryPosition Position `json:"primaryPosition"`
	BatSide         string   `json:"batSide,omitempty"`
	PitchHand       string   `json:"pitchHand,omitempty"`
	MLBDebutDate    string   `json:"mlbDebutDate,omitempty"`
	Active          bool     `json:"active"`
}
