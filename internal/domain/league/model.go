package league

import "fmt"

// League is one competition season as reported by a provider.
type League struct {
	ID         int64
	ExternalID string
	Name       string
	Country    string
	Season     int
	CrestURL   string
}

func (l League) Validate() error {
	if l.ExternalID == "" {
		return fmt.Errorf("league external id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season <= 0 {
		return fmt.Errorf("league season is required")
	}

	return nil
}
