package openligadb

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

// NormalizeMatch maps an OpenLigaDB match onto the canonical feed shape.
// A finished flag wins; otherwise any recorded result means the match is
// running. It never fails.
func NormalizeMatch(m Match) feed.Match {
	final := m.Result(ResultTypeFinal)
	halfTime := m.Result(ResultTypeHalfTime)

	status := fixture.StatusScheduled
	switch {
	case m.MatchIsFinished:
		status = fixture.StatusFinished
	case final != nil || halfTime != nil:
		status = fixture.StatusLive
	}

	out := feed.Match{
		ID:      feed.PrefixedID(feed.PrefixFallback, formatID(m.MatchID)),
		Source:  feed.SourceFallback,
		Status:  status,
		UTCDate: matchTime(m),
		Competition: feed.CompetitionRef{
			ID:     feed.PrefixedID(feed.PrefixFallback, formatID(m.LeagueID)),
			Name:   feed.NameOrUnknown(m.LeagueName),
			Code:   feed.OptionalString(m.LeagueShortcut),
			Season: m.LeagueSeason,
		},
		HomeTeam: normalizeTeam(m.Team1),
		AwayTeam: normalizeTeam(m.Team2),
	}
	if m.Group != nil {
		out.Matchday = m.Group.GroupOrderID
	}
	if m.Location != nil {
		out.Venue = strings.TrimSpace(m.Location.LocationStadium)
	}
	if final != nil {
		out.Score.Home = final.PointsTeam1
		out.Score.Away = final.PointsTeam2
	}
	if halfTime != nil {
		out.Score.HalfTime = &feed.HalfTime{Home: halfTime.PointsTeam1, Away: halfTime.PointsTeam2}
	}
	return out
}

func NormalizeStanding(row TableRow) feed.Standing {
	return feed.Standing{
		Position: row.TablePosition,
		Team: feed.TeamRef{
			ID:        feed.PrefixedID(feed.PrefixFallback, formatID(row.TeamInfoID)),
			Name:      feed.NameOrUnknown(row.TeamName),
			ShortName: feed.OptionalString(row.ShortName),
			Crest:     feed.OptionalString(row.TeamIconURL),
		},
		PlayedGames:    row.Matches,
		Won:            row.Won,
		Draw:           row.Draw,
		Lost:           row.Lost,
		Points:         row.Points,
		GoalsFor:       row.Goals,
		GoalsAgainst:   row.OpponentGoals,
		GoalDifference: row.GoalDiff,
	}
}

func NormalizeLeague(l League) feed.Competition {
	season, _ := strconv.Atoi(strings.TrimSpace(l.LeagueSeason))
	return feed.Competition{
		ID:     feed.PrefixedID(feed.PrefixFallback, formatID(l.LeagueID)),
		Name:   feed.NameOrUnknown(l.LeagueName),
		Code:   feed.OptionalString(l.LeagueShortcut),
		Season: season,
		Source: feed.SourceFallback,
	}
}

func normalizeTeam(t *Team) feed.TeamRef {
	if t == nil {
		return feed.TeamRef{ID: feed.PrefixedID(feed.PrefixFallback, ""), Name: feed.UnknownName}
	}
	return feed.TeamRef{
		ID:        feed.PrefixedID(feed.PrefixFallback, formatID(t.TeamID)),
		Name:      feed.NameOrUnknown(t.TeamName),
		ShortName: feed.OptionalString(t.ShortName),
		Crest:     feed.OptionalString(t.TeamIconURL),
	}
}

var (
	berlinOnce sync.Once
	berlin     *time.Location
)

// matchTime prefers the UTC timestamp and falls back to the local kickoff,
// which OpenLigaDB publishes in German time without an offset.
func matchTime(m Match) time.Time {
	if parsed, err := time.Parse(time.RFC3339, m.MatchDateTimeUTC); err == nil {
		return parsed.UTC()
	}
	if m.MatchDateTime == "" {
		return time.Time{}
	}
	berlinOnce.Do(func() {
		loc, err := time.LoadLocation("Europe/Berlin")
		if err != nil {
			loc = time.UTC
		}
		berlin = loc
	})
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", m.MatchDateTime, berlin)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
