package standing

import (
	"sort"

	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
)

// Entry represents a league table row for one team.
type Entry struct {
	Position       int          `json:"position"`
	Team           team.Summary `json:"team"`
	Played         int          `json:"played"`
	Won            int          `json:"won"`
	Drawn          int          `json:"drawn"`
	Lost           int          `json:"lost"`
	GoalsFor       int          `json:"goalsFor"`
	GoalsAgainst   int          `json:"goalsAgainst"`
	GoalDifference int          `json:"goalDifference"`
	Points         int          `json:"points"`
	Form           *string      `json:"form"`
}

func FromStats(t team.Team, stats teamstats.TeamStats) Entry {
	entry := Entry{
		Team:           t.Summary(),
		Played:         stats.MatchesPlayed,
		Won:            stats.Wins,
		Drawn:          stats.Draws,
		Lost:           stats.Losses,
		GoalsFor:       stats.GoalsFor,
		GoalsAgainst:   stats.GoalsAgainst,
		GoalDifference: stats.GoalDifference(),
		Points:         stats.Points,
	}
	if stats.LeaguePosition != nil {
		entry.Position = *stats.LeaguePosition
	}
	if stats.Form != "" {
		form := stats.Form
		entry.Form = &form
	}
	return entry
}

// Rank sorts entries by points, goal difference and goals for (all
// descending) and renumbers positions from 1. Rows tied on all three keep
// their input order. The input slice is not modified.
func Rank(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		return out[i].GoalsFor > out[j].GoalsFor
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
