package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type matchFeedMock struct {
	mock.Mock
}

func (m *matchFeedMock) GetMatchesForDate(ctx context.Context, competition string, day time.Time) MatchesResult {
	args := m.Called(ctx, competition, day)
	return args.Get(0).(MatchesResult)
}

func intRef(v int) *int {
	return &v
}

func premierLeagueMatches() []feed.Match {
	kickoff := time.Date(2025, 10, 4, 14, 0, 0, 0, time.UTC)
	competition := feed.CompetitionRef{ID: "fd-2021", Name: "Premier League", Country: feed.OptionalString("England"), Season: 2025}
	return []feed.Match{
		{
			ID:          "fd-100",
			Source:      feed.SourcePrimary,
			Status:      fixture.StatusFinished,
			UTCDate:     kickoff,
			Matchday:    7,
			Competition: competition,
			HomeTeam:    feed.TeamRef{ID: "fd-57", Name: "Arsenal FC", ShortName: feed.OptionalString("Arsenal")},
			AwayTeam:    feed.TeamRef{ID: "fd-61", Name: "Chelsea FC"},
			Score:       feed.Score{Home: intRef(2), Away: intRef(1)},
		},
		{
			ID:          "fd-101",
			Source:      feed.SourcePrimary,
			Status:      fixture.StatusLive,
			UTCDate:     kickoff.Add(2 * time.Hour),
			Matchday:    7,
			Minute:      intRef(30),
			Competition: competition,
			HomeTeam:    feed.TeamRef{ID: "fd-65", Name: "Manchester City FC"},
			AwayTeam:    feed.TeamRef{ID: "fd-57", Name: "Arsenal FC"},
			Score:       feed.Score{Home: intRef(0), Away: intRef(0)},
		},
	}
}

func newEmptyFixtureService(t *testing.T, source MatchFeed, c cache.Cache) (*FixtureService, *memory.FixtureRepository, *memory.TeamRepository) {
	t.Helper()

	fixtures := memory.NewFixtureRepository(nil)
	teams := memory.NewTeamRepository(nil)
	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  memory.NewLeagueRepository(nil),
		Teams:    teams,
		Fixtures: fixtures,
		Feed:     source,
		Cache:    c,
		Now:      func() time.Time { return time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC) },
	})
	return service, fixtures, teams
}

func TestFixtureService_SyncFixtures_CreatesThenUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &matchFeedMock{}
	day := time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)
	source.
		On("GetMatchesForDate", mock.Anything, "PL", day).
		Return(MatchesResult{Matches: premierLeagueMatches(), Source: feed.SourcePrimary}).
		Twice()

	service, fixtures, teams := newEmptyFixtureService(t, source, cache.NewMemoryCache())

	first, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04", League: "PL"})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Date: "2025-10-04", Synced: 2, Source: feed.SourcePrimary}, first)

	second, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04", League: "PL"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Synced)
	assert.Equal(t, 2, second.Updated)

	allTeams, err := teams.List(ctx)
	require.NoError(t, err)
	assert.Len(t, allTeams, 3)

	stored, exists, err := fixtures.GetByExternalID(ctx, "fd-100")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, fixture.StatusFinished, stored.Status)
	assert.Equal(t, 2025, stored.Season)
	assert.Nil(t, stored.Minute)
	home, away := stored.Scores()
	assert.Equal(t, []int{2, 1}, []int{home, away})

	source.AssertExpectations(t)
}

func TestFixtureService_SyncFixtures_ClearsFixtureAndStatsCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemoryCache()
	source := &matchFeedMock{}
	source.
		On("GetMatchesForDate", mock.Anything, "", mock.AnythingOfType("time.Time")).
		Return(MatchesResult{Matches: []feed.Match{}, Source: feed.SourceFallback}).
		Once()

	service, _, _ := newEmptyFixtureService(t, source, c)

	fixtureKey := cache.FixtureKey("live")
	statsKey := cache.Key(cache.CategoryTeam, 1, 2025)
	providerKey := cache.ProviderKey("standings", "BL1")
	for _, key := range []string{fixtureKey, statsKey, providerKey} {
		c.Set(ctx, key, []byte(`{}`), 0)
	}

	got, err := service.SyncFixtures(ctx, SyncInput{})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-04", got.Date)
	assert.Equal(t, feed.SourceFallback, got.Source)

	_, ok := c.Get(ctx, fixtureKey)
	assert.False(t, ok)
	_, ok = c.Get(ctx, statsKey)
	assert.False(t, ok)
	_, ok = c.Get(ctx, providerKey)
	assert.True(t, ok)
}

func TestFixtureService_SyncFixtures_RefreshesStatsWhenMatchFinishes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	day := time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)
	c := cache.NewMemoryCache()
	leagues := memory.NewLeagueRepository(nil)
	teams := memory.NewTeamRepository(nil)
	fixtures := memory.NewFixtureRepository(nil)
	h2hRepo := memory.NewH2HRepository()
	stats := NewStatsService(StatsServiceConfig{
		Teams:         teams,
		Leagues:       leagues,
		Fixtures:      fixtures,
		TeamStats:     memory.NewTeamStatsRepository(),
		H2H:           h2hRepo,
		Cache:         c,
		CurrentSeason: 2025,
	})

	finished := premierLeagueMatches()
	finished[1].Status = fixture.StatusFinished
	finished[1].Minute = nil
	finished[1].Score = feed.Score{Home: intRef(1), Away: intRef(3)}

	source := &matchFeedMock{}
	source.
		On("GetMatchesForDate", mock.Anything, "PL", day).
		Return(MatchesResult{Matches: premierLeagueMatches(), Source: feed.SourcePrimary}).
		Once()
	source.
		On("GetMatchesForDate", mock.Anything, "PL", day).
		Return(MatchesResult{Matches: finished, Source: feed.SourcePrimary}).
		Once()

	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  leagues,
		Teams:    teams,
		Fixtures: fixtures,
		Feed:     source,
		Stats:    stats,
		Cache:    c,
		Now:      func() time.Time { return time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC) },
	})

	first, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04", League: "PL"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.StatsRefreshed)

	arsenal, exists, err := teams.GetByExternalID(ctx, "fd-57")
	require.NoError(t, err)
	require.True(t, exists)
	city, exists, err := teams.GetByExternalID(ctx, "fd-65")
	require.NoError(t, err)
	require.True(t, exists)

	before, err := stats.GetTeamStats(ctx, arsenal.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, before.Stats.MatchesPlayed)

	second, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04", League: "PL"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, 3, second.StatsRefreshed)

	after, err := stats.GetTeamStats(ctx, arsenal.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Stats.MatchesPlayed)
	assert.Equal(t, 2, after.Stats.Wins)
	assert.Equal(t, 1, after.Stats.AwayWins)
	assert.Equal(t, 6, after.Stats.Points)
	require.NotNil(t, after.Stats.Form)
	assert.Equal(t, "WW", *after.Stats.Form)

	record, exists, err := h2hRepo.Get(ctx, arsenal.ID, city.ID)
	require.NoError(t, err)
	require.True(t, exists)
	arsenalWins, cityWins, draws := record.Oriented(arsenal.ID)
	assert.Equal(t, []int{1, 0, 0}, []int{arsenalWins, cityWins, draws})

	source.AssertExpectations(t)
}

func TestFixtureService_SyncFixtures_SkipsMatchWithoutTeamID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matches := premierLeagueMatches()
	matches[0].HomeTeam = feed.TeamRef{ID: feed.PrefixedID(feed.PrefixFallback, ""), Name: feed.UnknownName}

	source := &matchFeedMock{}
	source.
		On("GetMatchesForDate", mock.Anything, "", mock.AnythingOfType("time.Time")).
		Return(MatchesResult{Matches: matches, Source: feed.SourceFallback}).
		Once()

	service, fixtures, teams := newEmptyFixtureService(t, source, nil)

	got, err := service.SyncFixtures(ctx, SyncInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Synced)
	assert.Equal(t, 1, got.Failed)

	_, exists, err := fixtures.GetByExternalID(ctx, "fd-100")
	require.NoError(t, err)
	assert.False(t, exists)

	allTeams, err := teams.List(ctx)
	require.NoError(t, err)
	assert.Len(t, allTeams, 2)
	for _, item := range allTeams {
		assert.True(t, feed.KnownID(item.ExternalID))
	}
}

func TestFixtureService_SyncFixtures_RejectsMalformedDate(t *testing.T) {
	t.Parallel()

	source := &matchFeedMock{}
	service, _, _ := newEmptyFixtureService(t, source, nil)

	_, err := service.SyncFixtures(context.Background(), SyncInput{Date: "04/10/2025"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	source.AssertNotCalled(t, "GetMatchesForDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_ListLive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &matchFeedMock{}
	source.
		On("GetMatchesForDate", mock.Anything, mock.Anything, mock.Anything).
		Return(MatchesResult{Matches: premierLeagueMatches(), Source: feed.SourcePrimary})

	service, _, _ := newEmptyFixtureService(t, source, cache.NewMemoryCache())
	_, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04"})
	require.NoError(t, err)

	live, err := service.ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "fd-101", live[0].ExternalID)
	assert.Equal(t, "Manchester City FC", live[0].HomeTeam.Name)
	assert.Equal(t, "Premier League", live[0].League.Name)
	require.NotNil(t, live[0].Minute)
	assert.Equal(t, 30, *live[0].Minute)
}

func TestFixtureService_ListUpcoming(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  memory.NewLeagueRepository(memory.SeedLeagues()),
		Teams:    memory.NewTeamRepository(memory.SeedTeams()),
		Fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
		Cache:    cache.NewMemoryCache(),
		Now:      func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) },
	})

	got, err := service.ListUpcoming(ctx, UpcomingQuery{TeamID: memory.SeedTeamBayern})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "Borussia Dortmund", got[0].HomeTeam.Name)
	assert.Equal(t, "Bundesliga", got[0].League.Name)
	assert.Nil(t, got[0].HomeScore)

	_, err = service.ListUpcoming(ctx, UpcomingQuery{Limit: maxUpcomingLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFixtureService_GetByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  memory.NewLeagueRepository(memory.SeedLeagues()),
		Teams:    memory.NewTeamRepository(memory.SeedTeams()),
		Fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
		Cache:    cache.NewMemoryCache(),
	})

	got, err := service.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "FC Bayern München", got.HomeTeam.Name)
	assert.Equal(t, "RB Leipzig", got.AwayTeam.Name)
	require.NotNil(t, got.HomeScore)
	assert.Equal(t, 6, *got.HomeScore)

	_, err = service.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
