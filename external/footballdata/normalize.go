package footballdata

import (
	"strconv"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

// NormalizeMatch maps a football-data match onto the canonical feed shape.
// Missing fields degrade to defaults; it never fails.
func NormalizeMatch(m Match) feed.Match {
	out := feed.Match{
		ID:       feed.PrefixedID(feed.PrefixPrimary, formatID(m.ID)),
		Source:   feed.SourcePrimary,
		Status:   fixture.ParseStatus(m.Status),
		UTCDate:  parseUTCDate(m.UTCDate),
		Minute:   m.Minute,
		Venue:    m.Venue,
		Matchday: intValue(m.Matchday),
		Competition: feed.CompetitionRef{
			ID:     feed.PrefixedID(feed.PrefixPrimary, formatID(m.Competition.ID)),
			Name:   feed.NameOrUnknown(m.Competition.Name),
			Code:   feed.OptionalString(m.Competition.Code),
			Emblem: feed.OptionalString(m.Competition.Emblem),
			Season: seasonYear(m.Season.StartDate),
		},
		HomeTeam: normalizeTeam(m.HomeTeam),
		AwayTeam: normalizeTeam(m.AwayTeam),
		Score: feed.Score{
			Home: m.Score.FullTime.Home,
			Away: m.Score.FullTime.Away,
		},
	}
	if m.Area != nil {
		out.Competition.Country = feed.OptionalString(m.Area.Name)
	}
	if m.Score.HalfTime != nil {
		out.Score.HalfTime = &feed.HalfTime{Home: m.Score.HalfTime.Home, Away: m.Score.HalfTime.Away}
	}
	return out
}

func NormalizeStanding(row TableRow) feed.Standing {
	return feed.Standing{
		Position:       row.Position,
		Team:           normalizeTeam(row.Team),
		PlayedGames:    row.PlayedGames,
		Won:            row.Won,
		Draw:           row.Draw,
		Lost:           row.Lost,
		Points:         row.Points,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Form:           row.Form,
	}
}

func NormalizeCompetition(c Competition) feed.Competition {
	out := feed.Competition{
		ID:     feed.PrefixedID(feed.PrefixPrimary, formatID(c.ID)),
		Name:   feed.NameOrUnknown(c.Name),
		Code:   feed.OptionalString(c.Code),
		Source: feed.SourcePrimary,
	}
	if c.CurrentSeason != nil {
		out.Season = seasonYear(c.CurrentSeason.StartDate)
	}
	return out
}

func normalizeTeam(t Team) feed.TeamRef {
	return feed.TeamRef{
		ID:        feed.PrefixedID(feed.PrefixPrimary, formatID(t.ID)),
		Name:      feed.NameOrUnknown(t.Name),
		ShortName: feed.OptionalString(t.ShortName),
		Crest:     feed.OptionalString(t.Crest),
	}
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseUTCDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func seasonYear(startDate string) int {
	if len(startDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(startDate[:4])
	if err != nil {
		return 0
	}
	return year
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
