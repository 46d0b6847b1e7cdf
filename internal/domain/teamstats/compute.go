package teamstats

import (
	"sort"
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

// Compute aggregates the finished fixtures of one team into TeamStats.
// Fixtures that are not finished or do not involve the team are ignored.
func Compute(teamID int64, season int, fixtures []fixture.Fixture) TeamStats {
	out := TeamStats{TeamID: teamID, Season: season}

	finished := make([]fixture.Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.Status != fixture.StatusFinished || !item.Involves(teamID) {
			continue
		}
		finished = append(finished, item)
	}
	SortRecentFirst(finished)

	var form strings.Builder
	for _, item := range finished {
		isHome := item.HomeTeamID == teamID
		teamScore, opponentScore := perspective(item, isHome)

		out.MatchesPlayed++
		out.GoalsFor += teamScore
		out.GoalsAgainst += opponentScore
		if opponentScore == 0 {
			out.CleanSheets++
		}

		result := ResultFor(teamScore, opponentScore)
		switch result {
		case ResultWin:
			out.Wins++
			if isHome {
				out.HomeWins++
			} else {
				out.AwayWins++
			}
		case ResultLoss:
			out.Losses++
		default:
			out.Draws++
		}

		if form.Len() < FormLength {
			form.WriteString(string(result))
		}
	}

	out.Form = form.String()
	out.Points = out.Wins*3 + out.Draws
	return out
}

// SortRecentFirst orders fixtures by match date descending, breaking ties on id.
func SortRecentFirst(items []fixture.Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].MatchDate.Equal(items[j].MatchDate) {
			return items[i].MatchDate.After(items[j].MatchDate)
		}
		return items[i].ID > items[j].ID
	})
}

// Perspective returns (team goals, opponent goals) for the given team.
func Perspective(item fixture.Fixture, teamID int64) (int, int) {
	return perspective(item, item.HomeTeamID == teamID)
}

func perspective(item fixture.Fixture, isHome bool) (int, int) {
	home, away := item.Scores()
	if isHome {
		return home, away
	}
	return away, home
}
