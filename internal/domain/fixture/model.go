package fixture

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusHalftime  Status = "halftime"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

// Fixture represents one scheduled or played match between two teams.
type Fixture struct {
	ID         int64
	ExternalID string
	LeagueID   int64
	Season     int
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  time.Time
	Status     Status
	HomeScore  *int
	AwayScore  *int
	Minute     *int
	Matchday   int
	Venue      string
	Source     string
}

// HasScore reports whether a fixture in the given status carries a score.
func HasScore(status Status) bool {
	switch status {
	case StatusLive, StatusHalftime, StatusFinished:
		return true
	default:
		return false
	}
}

func IsLive(status Status) bool {
	return status == StatusLive || status == StatusHalftime
}

// Normalize enforces the score invariant: scores are present iff the status
// carries one, and the elapsed minute only exists while the match is running.
func (f Fixture) Normalize() Fixture {
	if HasScore(f.Status) {
		if f.HomeScore == nil {
			f.HomeScore = intPtr(0)
		}
		if f.AwayScore == nil {
			f.AwayScore = intPtr(0)
		}
	} else {
		f.HomeScore = nil
		f.AwayScore = nil
	}
	if !IsLive(f.Status) {
		f.Minute = nil
	}
	return f
}

// Scores returns home/away goals treating missing values as zero.
func (f Fixture) Scores() (int, int) {
	home, away := 0, 0
	if f.HomeScore != nil {
		home = *f.HomeScore
	}
	if f.AwayScore != nil {
		away = *f.AwayScore
	}
	return home, away
}

func (f Fixture) Involves(teamID int64) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// ParseStatus maps provider status vocabularies onto the canonical status.
func ParseStatus(value string) Status {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "LIVE", "IN_PLAY", "1H", "2H", "ET", "P", "BT":
		return StatusLive
	case "HALFTIME", "PAUSED", "HT":
		return StatusHalftime
	case "FINISHED", "AWARDED", "FT", "AET", "PEN", "AWD", "WO":
		return StatusFinished
	case "POSTPONED", "SUSPENDED", "PST", "SUSP", "INT":
		return StatusPostponed
	case "CANCELLED", "CANCELED", "CANC", "ABD":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

func intPtr(v int) *int {
	return &v
}
