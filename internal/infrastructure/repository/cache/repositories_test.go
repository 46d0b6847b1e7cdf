package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	leaguemock "github.com/riskibarqy/football-stats/internal/mocks/domain/league"
	teammock "github.com/riskibarqy/football-stats/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_GetByIDLoadsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.
		On("GetByID", mock.Anything, int64(5)).
		Return(team.Team{ID: 5, ExternalID: "fd-5", Name: "FC Bayern München"}, true, nil).
		Once()

	for i := 0; i < 3; i++ {
		got, exists, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		require.True(t, exists)
		assert.Equal(t, "FC Bayern München", got.Name)
	}
}

func TestTeamRepository_UpsertInvalidatesLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.On("ListByLeague", mock.Anything, int64(1)).Return([]team.Team{{ID: 5, Name: "Bayern"}}, nil).Once()
	next.On("GetByID", mock.Anything, int64(5)).Return(team.Team{ID: 5, Name: "Bayern"}, true, nil).Once()

	_, err := repo.ListByLeague(ctx, 1)
	require.NoError(t, err)
	_, _, err = repo.GetByID(ctx, 5)
	require.NoError(t, err)

	renamed := team.Team{ID: 5, ExternalID: "fd-5", Name: "FC Bayern München", LeagueID: 1}
	next.On("UpsertByExternalID", mock.Anything, mock.Anything).Return(renamed, nil).Once()
	next.On("ListByLeague", mock.Anything, int64(1)).Return([]team.Team{renamed}, nil).Once()
	next.On("GetByID", mock.Anything, int64(5)).Return(renamed, true, nil).Once()

	_, err = repo.UpsertByExternalID(ctx, renamed)
	require.NoError(t, err)

	items, err := repo.ListByLeague(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FC Bayern München", items[0].Name)

	got, _, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "FC Bayern München", got.Name)
}

func TestLeagueRepository_CachesMissingLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := leaguemock.NewRepository(t)
	repo := NewLeagueRepository(next, basecache.NewStore(time.Minute))

	next.
		On("GetByExternalID", mock.Anything, "fd-2002", 2025).
		Return(league.League{}, false, nil).
		Once()

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByExternalID(ctx, "fd-2002", 2025)
		require.NoError(t, err)
		assert.False(t, exists)
	}

	saved := league.League{ID: 3, ExternalID: "fd-2002", Name: "Bundesliga", Season: 2025}
	next.On("UpsertByExternalID", mock.Anything, mock.Anything).Return(saved, nil).Once()
	next.On("GetByExternalID", mock.Anything, "fd-2002", 2025).Return(saved, true, nil).Once()

	_, err := repo.UpsertByExternalID(ctx, saved)
	require.NoError(t, err)

	got, exists, err := repo.GetByExternalID(ctx, "fd-2002", 2025)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(3), got.ID)
}
