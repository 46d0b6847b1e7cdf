package openligadb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

func intPtr(v int) *int { return &v }

func TestNormalizeMatch_Finished(t *testing.T) {
	m := Match{
		MatchID:          72190,
		MatchDateTimeUTC: "2025-08-22T18:30:00Z",
		LeagueID:         4741,
		LeagueName:       "1. Fußball-Bundesliga 2025/2026",
		LeagueSeason:     2025,
		LeagueShortcut:   "bl1",
		Group:            &Group{GroupOrderID: 1},
		Team1:            &Team{TeamID: 40, TeamName: "FC Bayern München", ShortName: "Bayern"},
		Team2:            &Team{TeamID: 1635, TeamName: "RB Leipzig"},
		MatchIsFinished:  true,
		MatchResults: []Result{
			{ResultTypeID: ResultTypeHalfTime, PointsTeam1: intPtr(3), PointsTeam2: intPtr(0)},
			{ResultTypeID: ResultTypeFinal, PointsTeam1: intPtr(6), PointsTeam2: intPtr(0)},
		},
		Location: &Location{LocationStadium: " Allianz Arena "},
	}

	got := NormalizeMatch(m)

	assert.Equal(t, "ol-72190", got.ID)
	assert.Equal(t, feed.SourceFallback, got.Source)
	assert.Equal(t, fixture.StatusFinished, got.Status)
	assert.Equal(t, time.Date(2025, 8, 22, 18, 30, 0, 0, time.UTC), got.UTCDate)
	assert.Equal(t, 1, got.Matchday)
	assert.Equal(t, "Allianz Arena", got.Venue)
	assert.Equal(t, "ol-40", got.HomeTeam.ID)
	require.NotNil(t, got.HomeTeam.ShortName)
	assert.Equal(t, "Bayern", *got.HomeTeam.ShortName)
	assert.Nil(t, got.AwayTeam.ShortName)
	require.NotNil(t, got.Score.Home)
	assert.Equal(t, 6, *got.Score.Home)
	require.NotNil(t, got.Score.HalfTime)
	assert.Equal(t, 3, *got.Score.HalfTime.Home)
}

func TestNormalizeMatch_StatusFromResults(t *testing.T) {
	running := NormalizeMatch(Match{
		MatchID:      1,
		MatchResults: []Result{{ResultTypeID: ResultTypeHalfTime, PointsTeam1: intPtr(1), PointsTeam2: intPtr(1)}},
	})
	assert.Equal(t, fixture.StatusLive, running.Status)
	assert.Nil(t, running.Score.Home)

	upcoming := NormalizeMatch(Match{MatchID: 2})
	assert.Equal(t, fixture.StatusScheduled, upcoming.Status)
	assert.Equal(t, feed.UnknownName, upcoming.HomeTeam.Name)
	assert.Nil(t, upcoming.Score.HalfTime)
}

func TestNormalizeStanding(t *testing.T) {
	got := NormalizeStanding(TableRow{
		TeamInfoID:    40,
		TeamName:      "FC Bayern München",
		TablePosition: 1,
		Points:        9,
		Goals:         11,
		OpponentGoals: 2,
		Matches:       3,
		Won:           3,
		GoalDiff:      9,
	})

	assert.Equal(t, "ol-40", got.Team.ID)
	assert.Equal(t, 1, got.Position)
	assert.Equal(t, 3, got.PlayedGames)
	assert.Equal(t, 11, got.GoalsFor)
	assert.Equal(t, 2, got.GoalsAgainst)
	assert.Equal(t, 9, got.GoalDifference)
	assert.Nil(t, got.Team.Crest)
}

func TestNormalizeLeague(t *testing.T) {
	got := NormalizeLeague(League{LeagueID: 4741, LeagueName: "1. Fußball-Bundesliga", LeagueShortcut: "bl1", LeagueSeason: "2025"})

	assert.Equal(t, "ol-4741", got.ID)
	assert.Equal(t, 2025, got.Season)
	assert.Equal(t, feed.SourceFallback, got.Source)
	require.NotNil(t, got.Code)
	assert.Equal(t, "bl1", *got.Code)
}
