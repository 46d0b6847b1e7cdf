package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-stats/internal/domain/h2h"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/football-stats/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/football-stats/internal/mocks/domain/teamstats"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	service *StatsService
	cache   *cache.MemoryCache
	stats   *memory.TeamStatsRepository
	h2h     *memory.H2HRepository
}

func newSeededStatsService(t *testing.T) statsFixture {
	t.Helper()

	c := cache.NewMemoryCache()
	statsRepo := memory.NewTeamStatsRepository()
	h2hRepo := memory.NewH2HRepository()
	service := NewStatsService(StatsServiceConfig{
		Teams:         memory.NewTeamRepository(memory.SeedTeams()),
		Leagues:       memory.NewLeagueRepository(memory.SeedLeagues()),
		Fixtures:      memory.NewFixtureRepository(memory.SeedFixtures()),
		TeamStats:     statsRepo,
		H2H:           h2hRepo,
		Cache:         c,
		CurrentSeason: memory.SeedSeason,
		RecalcWorkers: 2,
	})
	return statsFixture{service: service, cache: c, stats: statsRepo, h2h: h2hRepo}
}

func TestStatsService_GetTeamStats_ComputesAndStores(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	got, err := f.service.GetTeamStats(ctx, memory.SeedTeamBayern, nil)
	require.NoError(t, err)

	assert.Equal(t, memory.SeedSeason, got.Season)
	assert.Equal(t, "FC Bayern München", got.Team.Name)
	assert.Equal(t, 3, got.Stats.MatchesPlayed)
	assert.Equal(t, 3, got.Stats.Wins)
	assert.Equal(t, 11, got.Stats.GoalsFor)
	assert.Equal(t, 2, got.Stats.GoalsAgainst)
	assert.Equal(t, 9, got.Stats.GoalDifference)
	assert.Equal(t, 9, got.Stats.Points)
	require.NotNil(t, got.Stats.Form)
	assert.Equal(t, "WWW", *got.Stats.Form)

	stored, exists, err := f.stats.Get(ctx, memory.SeedTeamBayern, memory.SeedSeason)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 9, stored.Points)

	_, cached := f.cache.Get(ctx, cache.Key(cache.CategoryTeam, memory.SeedTeamBayern, memory.SeedSeason))
	assert.True(t, cached)
}

func TestStatsService_GetTeamStats_UnknownTeam(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)

	_, err := f.service.GetTeamStats(context.Background(), 999, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsService_GetTeamStats_ServesCacheUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	statsRepo := teamstatsmock.NewRepository(t)
	service := NewStatsService(StatsServiceConfig{
		Teams:     teamRepo,
		TeamStats: statsRepo,
		Cache:     cache.NewMemoryCache(),
	})

	teamRepo.
		On("GetByID", mock.Anything, int64(8)).
		Return(team.Team{ID: 8, Name: "Hertha BSC"}, true, nil).
		Once()
	statsRepo.
		On("Get", mock.Anything, int64(8), DefaultSeason).
		Return(teamstats.TeamStats{TeamID: 8, Season: DefaultSeason, MatchesPlayed: 2, Wins: 2, Points: 6, Form: "WW"}, true, nil).
		Once()

	first, err := service.GetTeamStats(ctx, 8, nil)
	require.NoError(t, err)
	second, err := service.GetTeamStats(ctx, 8, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 6, second.Stats.Points)
}

func TestStatsService_GetTeamForm(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)

	got, err := f.service.GetTeamForm(context.Background(), memory.SeedTeamDortmund, 0)
	require.NoError(t, err)

	assert.Equal(t, memory.SeedTeamDortmund, got.TeamID)
	require.Len(t, got.Matches, 3)
	assert.Equal(t, "LDD", got.Summary.FormString)
	assert.Equal(t, FormSummary{Played: 3, Wins: 0, Draws: 2, Losses: 1, FormString: "LDD"}, got.Summary)

	latest := got.Matches[0]
	assert.Equal(t, int64(5), latest.FixtureID)
	assert.False(t, latest.IsHome)
	assert.Equal(t, "FC Bayern München", latest.Opponent.Name)
	assert.Equal(t, FormScore{Team: 1, Opponent: 2}, latest.Score)
	assert.Equal(t, teamstats.ResultLoss, latest.Result)
}

func TestStatsService_GetTeamForm_LimitsAndValidates(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	got, err := f.service.GetTeamForm(ctx, memory.SeedTeamBayern, 2)
	require.NoError(t, err)
	assert.Len(t, got.Matches, 2)
	assert.Equal(t, "WW", got.Summary.FormString)

	for _, n := range []int{-1, MaxFormLength + 1} {
		_, err := f.service.GetTeamForm(ctx, memory.SeedTeamBayern, n)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("last=%d: expected ErrInvalidInput, got %v", n, err)
		}
	}
}

func TestStatsService_GetStandings_RanksAndPersistsPositions(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	got, err := f.service.GetStandings(ctx, memory.SeedLeagueBundesliga, nil)
	require.NoError(t, err)
	require.Len(t, got, 4)

	wantOrder := []int64{memory.SeedTeamBayern, memory.SeedTeamLeverkusen, memory.SeedTeamDortmund, memory.SeedTeamLeipzig}
	for i, id := range wantOrder {
		assert.Equal(t, id, got[i].Team.ID, "position %d", i+1)
		assert.Equal(t, i+1, got[i].Position)
	}
	assert.Equal(t, 9, got[0].Points)
	assert.Equal(t, 4, got[1].Points)

	stored, exists, err := f.stats.Get(ctx, memory.SeedTeamLeipzig, memory.SeedSeason)
	require.NoError(t, err)
	require.True(t, exists)
	require.NotNil(t, stored.LeaguePosition)
	assert.Equal(t, 4, *stored.LeaguePosition)
}

func TestStatsService_GetStandings_UnknownLeague(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)

	_, err := f.service.GetStandings(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsService_GetH2H_OrientsToCallerOrder(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	forward, err := f.service.GetH2H(ctx, memory.SeedTeamBayern, memory.SeedTeamDortmund)
	require.NoError(t, err)
	assert.Equal(t, memory.SeedTeamBayern, forward.Team1.ID)
	assert.Equal(t, H2HCounts{TotalMatches: 1, Team1Wins: 1, Team2Wins: 0, Draws: 0}, forward.Stats)
	require.Len(t, forward.LastMatches, 1)
	assert.Equal(t, "FC Bayern München", forward.LastMatches[0].HomeTeam)
	assert.Equal(t, 2, forward.LastMatches[0].HomeScore)

	// Served from the canonical cache entry.
	reverse, err := f.service.GetH2H(ctx, memory.SeedTeamDortmund, memory.SeedTeamBayern)
	require.NoError(t, err)
	assert.Equal(t, memory.SeedTeamDortmund, reverse.Team1.ID)
	assert.Equal(t, H2HCounts{TotalMatches: 1, Team1Wins: 0, Team2Wins: 1, Draws: 0}, reverse.Stats)

	record, exists, err := f.h2h.Get(ctx, memory.SeedTeamDortmund, memory.SeedTeamBayern)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, memory.SeedTeamBayern, record.Team1ID)
	assert.Equal(t, 1, record.Team1Wins)
}

func TestStatsService_GetH2H_RecomputesOverStaleStoredRecord(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	_, err := f.h2h.Upsert(ctx, h2h.Record{Team1ID: memory.SeedTeamBayern, Team2ID: memory.SeedTeamLeipzig, Team1Wins: 7, Team2Wins: 2, Draws: 3})
	require.NoError(t, err)

	got, err := f.service.GetH2H(ctx, memory.SeedTeamLeipzig, memory.SeedTeamBayern)
	require.NoError(t, err)
	assert.Equal(t, H2HCounts{TotalMatches: 1, Team1Wins: 0, Team2Wins: 1, Draws: 0}, got.Stats)
	assert.Len(t, got.LastMatches, got.Stats.TotalMatches)

	stored, exists, err := f.h2h.Get(ctx, memory.SeedTeamBayern, memory.SeedTeamLeipzig)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, []int{1, 0, 0}, []int{stored.Team1Wins, stored.Team2Wins, stored.Draws})
}

func TestStatsService_RefreshH2H(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	require.NoError(t, f.service.RefreshH2H(ctx, memory.SeedTeamLeverkusen, memory.SeedTeamDortmund))
	stored, exists, err := f.h2h.Get(ctx, memory.SeedTeamDortmund, memory.SeedTeamLeverkusen)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 1, stored.Draws)

	assert.ErrorIs(t, f.service.RefreshH2H(ctx, memory.SeedTeamBayern, memory.SeedTeamBayern), ErrInvalidInput)
	assert.ErrorIs(t, f.service.RefreshH2H(ctx, memory.SeedTeamBayern, 99), ErrNotFound)
}

func TestStatsService_GetH2H_RejectsUnknownAndIdenticalTeams(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	_, err := f.service.GetH2H(ctx, memory.SeedTeamBayern, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.service.GetH2H(ctx, memory.SeedTeamBayern, memory.SeedTeamBayern)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, exists, err := f.h2h.Get(ctx, memory.SeedTeamBayern, 99)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStatsService_CompareTeams(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)

	got, err := f.service.CompareTeams(context.Background(), memory.SeedTeamLeverkusen, memory.SeedTeamBayern)
	require.NoError(t, err)

	assert.Equal(t, memory.SeedTeamLeverkusen, got.Team1.Team.ID)
	assert.Equal(t, memory.SeedTeamBayern, got.Team2.Team.ID)
	assert.Equal(t, memory.SeedTeamLeverkusen, got.H2H.Team1.ID)
	assert.Equal(t, 1, got.H2H.Stats.Team2Wins)
}

func TestStatsService_CompareTeams_PropagatesFailure(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)

	_, err := f.service.CompareTeams(context.Background(), memory.SeedTeamBayern, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsService_RecalculateAllStats_ClearsStatsCache(t *testing.T) {
	t.Parallel()

	f := newSeededStatsService(t)
	ctx := context.Background()

	staleKey := cache.Key(cache.CategoryStandings, memory.SeedLeagueBundesliga, memory.SeedSeason)
	fixtureKey := cache.FixtureKey("live")
	f.cache.Set(ctx, staleKey, []byte(`[]`), 0)
	f.cache.Set(ctx, fixtureKey, []byte(`[]`), 0)

	got, err := f.service.RecalculateAllStats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, RecalcResult{Season: memory.SeedSeason, Updated: 4}, got)

	_, ok := f.cache.Get(ctx, staleKey)
	assert.False(t, ok)
	_, ok = f.cache.Get(ctx, fixtureKey)
	assert.True(t, ok)

	for _, item := range memory.SeedTeams() {
		_, exists, err := f.stats.Get(ctx, item.ID, memory.SeedSeason)
		require.NoError(t, err)
		assert.True(t, exists, "team %d", item.ID)
	}
}
