package h2h

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
)

const (
	// HistoryLimit is how many finished meetings feed the record.
	HistoryLimit = 10
	// SummaryLimit is how many meetings are cached on the record itself.
	SummaryLimit = 5
)

// MatchSummary is one past meeting stored on the record.
type MatchSummary struct {
	FixtureID  int64     `json:"fixtureId"`
	Date       time.Time `json:"date"`
	HomeTeamID int64     `json:"homeTeamId"`
	AwayTeamID int64     `json:"awayTeamId"`
	HomeTeam   string    `json:"home"`
	AwayTeam   string    `json:"away"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
}

func (m MatchSummary) Score() string {
	return fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
}

// Record is keyed by (Team1ID, Team2ID) with Team1ID < Team2ID.
type Record struct {
	Team1ID   int64
	Team2ID   int64
	Team1Wins int
	Team2Wins int
	Draws     int
	LastFive  []MatchSummary
	UpdatedAt time.Time
}

func (r Record) TotalMatches() int {
	return r.Team1Wins + r.Team2Wins + r.Draws
}

// Canonical orders two team ids ascending. swapped is true when a > b.
func Canonical(a, b int64) (lo, hi int64, swapped bool) {
	if a <= b {
		return a, b, false
	}
	return b, a, true
}

// Oriented returns (first wins, second wins, draws) for the caller's order.
func (r Record) Oriented(first int64) (int, int, int) {
	if first == r.Team1ID {
		return r.Team1Wins, r.Team2Wins, r.Draws
	}
	return r.Team2Wins, r.Team1Wins, r.Draws
}

// NameLookup resolves team names for match summaries.
type NameLookup func(teamID int64) string

// Compute builds the canonical record for lo/hi from their finished meetings.
// Fixtures are expected most-recent-first; only the first HistoryLimit count.
func Compute(lo, hi int64, fixtures []fixture.Fixture, names NameLookup) Record {
	out := Record{Team1ID: lo, Team2ID: hi}

	meetings := make([]fixture.Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.Status != fixture.StatusFinished || !item.Involves(lo) || !item.Involves(hi) {
			continue
		}
		meetings = append(meetings, item)
	}
	teamstats.SortRecentFirst(meetings)
	if len(meetings) > HistoryLimit {
		meetings = meetings[:HistoryLimit]
	}

	for _, item := range meetings {
		loScore, hiScore := teamstats.Perspective(item, lo)
		switch teamstats.ResultFor(loScore, hiScore) {
		case teamstats.ResultWin:
			out.Team1Wins++
		case teamstats.ResultLoss:
			out.Team2Wins++
		default:
			out.Draws++
		}
	}

	out.LastFive = Summaries(meetings, SummaryLimit, names)
	return out
}

func Summaries(items []fixture.Fixture, limit int, names NameLookup) []MatchSummary {
	if limit > len(items) || limit <= 0 {
		limit = len(items)
	}
	out := make([]MatchSummary, 0, limit)
	for _, item := range items[:limit] {
		home, away := item.Scores()
		summary := MatchSummary{
			FixtureID:  item.ID,
			Date:       item.MatchDate,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			HomeScore:  home,
			AwayScore:  away,
		}
		if names != nil {
			summary.HomeTeam = names(item.HomeTeamID)
			summary.AwayTeam = names(item.AwayTeamID)
		}
		out = append(out, summary)
	}
	return out
}
