package team

import "fmt"

// Team is a football club known to one of the upstream providers.
type Team struct {
	ID         int64
	ExternalID string
	Name       string
	ShortCode  string
	CrestURL   string
	LeagueID   int64
	Country    string
}

func (t Team) Validate() error {
	if t.ExternalID == "" {
		return fmt.Errorf("team external id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Summary is the compact team shape embedded in stats responses.
type Summary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CrestURL string `json:"crestUrl,omitempty"`
}

func (t Team) Summary() Summary {
	return Summary{ID: t.ID, Name: t.Name, CrestURL: t.CrestURL}
}
