package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	fixturemock "github.com/riskibarqy/football-stats/internal/mocks/domain/fixture"
	leaguemock "github.com/riskibarqy/football-stats/internal/mocks/domain/league"
	teammock "github.com/riskibarqy/football-stats/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestFixtureService_SyncFixtures_SkipsFailedRowsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	source := &matchFeedMock{}

	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  leagueRepo,
		Teams:    teamRepo,
		Fixtures: fixtureRepo,
		Feed:     source,
	})

	source.
		On("GetMatchesForDate", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "PL", time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)).
		Return(MatchesResult{Matches: premierLeagueMatches(), Source: feed.SourcePrimary}).
		Once()
	leagueRepo.
		On("UpsertByExternalID", mock.Anything, mock.MatchedBy(func(v league.League) bool {
			return v.ExternalID == "fd-2021" && v.Season == 2025 && v.Country == "England"
		})).
		Return(league.League{ID: 10, ExternalID: "fd-2021", Name: "Premier League", Season: 2025}, nil).
		Once()
	for i, externalID := range []string{"fd-57", "fd-61", "fd-65"} {
		teamRepo.
			On("UpsertByExternalID", mock.Anything, mock.MatchedBy(func(v team.Team) bool {
				return v.ExternalID == externalID && v.LeagueID == 10
			})).
			Return(team.Team{ID: int64(100 + i), ExternalID: externalID}, nil).
			Once()
	}
	fixtureRepo.
		On("UpsertByExternalID", mock.Anything, mock.MatchedBy(func(v fixture.Fixture) bool { return v.ExternalID == "fd-100" })).
		Return(fixture.Fixture{}, false, errors.New("connection reset")).
		Once()
	fixtureRepo.
		On("UpsertByExternalID", mock.Anything, mock.MatchedBy(func(v fixture.Fixture) bool {
			return v.ExternalID == "fd-101" && v.HomeTeamID == 102 && v.AwayTeamID == 100
		})).
		Return(fixture.Fixture{ID: 1, ExternalID: "fd-101"}, true, nil).
		Once()

	got, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04", League: "PL"})
	if err != nil {
		t.Fatalf("sync fixtures: %v", err)
	}
	if got.Synced != 1 || got.Updated != 0 || got.Failed != 1 {
		t.Fatalf("unexpected sync result: %+v", got)
	}
	source.AssertExpectations(t)
}

func TestFixtureService_SyncFixtures_LeagueFailureSkipsRowUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	source := &matchFeedMock{}

	service := NewFixtureService(FixtureServiceConfig{
		Leagues:  leagueRepo,
		Teams:    teamRepo,
		Fixtures: fixtureRepo,
		Feed:     source,
	})

	source.
		On("GetMatchesForDate", mock.Anything, mock.Anything, mock.Anything).
		Return(MatchesResult{Matches: premierLeagueMatches()[:1], Source: feed.SourcePrimary}).
		Once()
	leagueRepo.
		On("UpsertByExternalID", mock.Anything, mock.Anything).
		Return(league.League{}, errors.New("unique violation")).
		Once()

	got, err := service.SyncFixtures(ctx, SyncInput{Date: "2025-10-04"})
	if err != nil {
		t.Fatalf("sync fixtures: %v", err)
	}
	if got.Failed != 1 || got.Synced != 0 {
		t.Fatalf("unexpected sync result: %+v", got)
	}
}
