package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
)

// Seed ids for the local dataset.
const (
	SeedLeagueBundesliga int64 = 1

	SeedTeamBayern     int64 = 1
	SeedTeamDortmund   int64 = 2
	SeedTeamLeverkusen int64 = 3
	SeedTeamLeipzig    int64 = 4

	SeedSeason = 2025
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:         SeedLeagueBundesliga,
			ExternalID: "fd-2002",
			Name:       "Bundesliga",
			Country:    "Germany",
			Season:     SeedSeason,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: SeedTeamBayern, ExternalID: "fd-5", Name: "FC Bayern München", ShortCode: "FCB", LeagueID: SeedLeagueBundesliga, Country: "Germany"},
		{ID: SeedTeamDortmund, ExternalID: "fd-4", Name: "Borussia Dortmund", ShortCode: "BVB", LeagueID: SeedLeagueBundesliga, Country: "Germany"},
		{ID: SeedTeamLeverkusen, ExternalID: "fd-3", Name: "Bayer 04 Leverkusen", ShortCode: "B04", LeagueID: SeedLeagueBundesliga, Country: "Germany"},
		{ID: SeedTeamLeipzig, ExternalID: "fd-721", Name: "RB Leipzig", ShortCode: "RBL", LeagueID: SeedLeagueBundesliga, Country: "Germany"},
	}
}

func SeedFixtures() []fixture.Fixture {
	base := time.Date(2025, 8, 22, 18, 30, 0, 0, time.UTC)
	played := func(id, home, away int64, homeScore, awayScore, matchday int) fixture.Fixture {
		return fixture.Fixture{
			ID:         id,
			ExternalID: "seed-" + strconv.FormatInt(id, 10),
			LeagueID:   SeedLeagueBundesliga,
			Season:     SeedSeason,
			HomeTeamID: home,
			AwayTeamID: away,
			MatchDate:  base.AddDate(0, 0, 7*(matchday-1)),
			Status:     fixture.StatusFinished,
			HomeScore:  &homeScore,
			AwayScore:  &awayScore,
			Matchday:   matchday,
			Source:     "seed",
		}
	}

	return []fixture.Fixture{
		played(1, SeedTeamBayern, SeedTeamLeipzig, 6, 0, 1),
		played(2, SeedTeamDortmund, SeedTeamLeverkusen, 1, 1, 1),
		played(3, SeedTeamLeverkusen, SeedTeamBayern, 1, 3, 2),
		played(4, SeedTeamLeipzig, SeedTeamDortmund, 2, 2, 2),
		played(5, SeedTeamBayern, SeedTeamDortmund, 2, 1, 3),
		played(6, SeedTeamLeipzig, SeedTeamLeverkusen, 0, 1, 3),
		{
			ID:         7,
			ExternalID: "seed-7",
			LeagueID:   SeedLeagueBundesliga,
			Season:     SeedSeason,
			HomeTeamID: SeedTeamDortmund,
			AwayTeamID: SeedTeamBayern,
			MatchDate:  base.AddDate(0, 0, 21),
			Status:     fixture.StatusScheduled,
			Matchday:   4,
			Source:     "seed",
		},
	}
}
