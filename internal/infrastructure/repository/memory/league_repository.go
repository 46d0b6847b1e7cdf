package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/football-stats/internal/domain/league"
)

type LeagueRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]league.League
	byExternal map[string]int64
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	r := &LeagueRepository{
		byID:       make(map[int64]league.League, len(leagues)),
		byExternal: make(map[string]int64, len(leagues)),
	}
	for _, item := range leagues {
		r.put(item)
	}
	return r
}

func leagueKey(externalID string, season int) string {
	return externalID + "@" + strconv.Itoa(season)
}

func (r *LeagueRepository) put(item league.League) league.League {
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	} else if item.ID > r.nextID {
		r.nextID = item.ID
	}
	r.byID[item.ID] = item
	if item.ExternalID != "" {
		r.byExternal[leagueKey(item.ExternalID, item.Season)] = item.ID
	}
	return item
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) GetByExternalID(_ context.Context, externalID string, season int) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byExternal[leagueKey(externalID, season)]
	if !ok {
		return league.League{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *LeagueRepository) UpsertByExternalID(_ context.Context, item league.League) (league.League, error) {
	if err := item.Validate(); err != nil {
		return league.League{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.byExternal[leagueKey(item.ExternalID, item.Season)]
	return r.put(item), nil
}
