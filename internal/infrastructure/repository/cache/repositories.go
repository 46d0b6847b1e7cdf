package cache

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	basecache "github.com/riskibarqy/football-stats/internal/platform/cache"
)

const (
	teamListKey          = "team:list"
	teamListLeaguePrefix = "team:list:league:"
)

// found remembers misses too, so unknown ids stop reaching the database.
type found[T any] struct {
	item   T
	exists bool
}

func lookup[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return found[T]{item: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	hit, _ := v.(found[T])
	return hit.item, hit.exists, nil
}

// list hands every caller its own copy of the cached slice.
func list[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}

// LeagueRepository keeps league lookups in process. Leagues change only
// through sync, which goes through UpsertByExternalID.
type LeagueRepository struct {
	next  league.Repository
	store *basecache.Store
}

func NewLeagueRepository(next league.Repository, store *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, store: store}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	return lookup(ctx, r.store, fmt.Sprintf("league:id:%d", leagueID), func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByID(ctx, leagueID)
	})
}

func (r *LeagueRepository) GetByExternalID(ctx context.Context, externalID string, season int) (league.League, bool, error) {
	return lookup(ctx, r.store, fmt.Sprintf("league:external:%s:%d", externalID, season), func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByExternalID(ctx, externalID, season)
	})
}

func (r *LeagueRepository) UpsertByExternalID(ctx context.Context, item league.League) (league.League, error) {
	saved, err := r.next.UpsertByExternalID(ctx, item)
	if err != nil {
		return league.League{}, err
	}
	r.store.Delete(ctx, fmt.Sprintf("league:id:%d", saved.ID))
	r.store.Delete(ctx, fmt.Sprintf("league:external:%s:%d", saved.ExternalID, saved.Season))
	return saved, nil
}

// TeamRepository caches team lookups and listings. Any upsert drops every
// listing since a team may have moved league.
type TeamRepository struct {
	next  team.Repository
	store *basecache.Store
}

func NewTeamRepository(next team.Repository, store *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, store: store}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return list(ctx, r.store, teamListKey, r.next.List)
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	return list(ctx, r.store, fmt.Sprintf("%s%d", teamListLeaguePrefix, leagueID), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return lookup(ctx, r.store, fmt.Sprintf("team:id:%d", teamID), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID string) (team.Team, bool, error) {
	return lookup(ctx, r.store, "team:external:"+externalID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByExternalID(ctx, externalID)
	})
}

func (r *TeamRepository) UpsertByExternalID(ctx context.Context, item team.Team) (team.Team, error) {
	saved, err := r.next.UpsertByExternalID(ctx, item)
	if err != nil {
		return team.Team{}, err
	}
	r.store.Delete(ctx, fmt.Sprintf("team:id:%d", saved.ID))
	r.store.Delete(ctx, "team:external:"+saved.ExternalID)
	r.store.Delete(ctx, teamListKey)
	r.store.DeleteMatching(ctx, teamListLeaguePrefix+"*")
	return saved, nil
}
