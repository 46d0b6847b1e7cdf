package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
)

type FixtureRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]fixture.Fixture
	byExternal map[string]int64
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{
		byID:       make(map[int64]fixture.Fixture, len(fixtures)),
		byExternal: make(map[string]int64, len(fixtures)),
	}
	for _, item := range fixtures {
		r.put(item)
	}
	return r
}

func (r *FixtureRepository) put(item fixture.Fixture) fixture.Fixture {
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	} else if item.ID > r.nextID {
		r.nextID = item.ID
	}
	item = item.Normalize()
	r.byID[item.ID] = item
	if item.ExternalID != "" {
		r.byExternal[item.ExternalID] = item.ID
	}
	return item
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *FixtureRepository) GetByExternalID(_ context.Context, externalID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byExternal[externalID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *FixtureRepository) UpsertByExternalID(_ context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existingID, exists := r.byExternal[item.ExternalID]
	if exists {
		item.ID = existingID
	} else {
		item.ID = 0
	}
	return r.put(item), !exists, nil
}

func (r *FixtureRepository) ListFinishedByTeam(_ context.Context, teamID int64, season *int, limit int) ([]fixture.Fixture, error) {
	return r.filter(limit, func(item fixture.Fixture) bool {
		if item.Status != fixture.StatusFinished || !item.Involves(teamID) {
			return false
		}
		return season == nil || item.Season == *season
	}), nil
}

func (r *FixtureRepository) ListFinishedBetween(_ context.Context, teamA, teamB int64, limit int) ([]fixture.Fixture, error) {
	return r.filter(limit, func(item fixture.Fixture) bool {
		return item.Status == fixture.StatusFinished && item.Involves(teamA) && item.Involves(teamB)
	}), nil
}

func (r *FixtureRepository) ListUpcoming(_ context.Context, filter fixture.UpcomingFilter) ([]fixture.Fixture, error) {
	r.mu.RLock()
	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if item.Status != fixture.StatusScheduled || item.MatchDate.Before(filter.From) {
			continue
		}
		if filter.LeagueID > 0 && item.LeagueID != filter.LeagueID {
			continue
		}
		if filter.TeamID > 0 && !item.Involves(filter.TeamID) {
			continue
		}
		out = append(out, item)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, filter.Offset, filter.Limit), nil
}

func (r *FixtureRepository) ListLive(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if fixture.IsLive(item.Status) {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// filter returns matching fixtures most recent first, capped at limit.
func (r *FixtureRepository) filter(limit int, keep func(fixture.Fixture) bool) []fixture.Fixture {
	r.mu.RLock()
	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if keep(item) {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	teamstats.SortRecentFirst(out)
	return page(out, 0, limit)
}

func page[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
