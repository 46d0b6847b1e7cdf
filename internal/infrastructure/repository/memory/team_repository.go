package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-stats/internal/domain/team"
)

type TeamRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]team.Team
	byExternal map[string]int64
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{
		byID:       make(map[int64]team.Team, len(teams)),
		byExternal: make(map[string]int64, len(teams)),
	}
	for _, item := range teams {
		r.put(item)
	}
	return r
}

func (r *TeamRepository) put(item team.Team) team.Team {
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	} else if item.ID > r.nextID {
		r.nextID = item.ID
	}
	r.byID[item.ID] = item
	if item.ExternalID != "" {
		r.byExternal[item.ExternalID] = item.ID
	}
	return item
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	out := make([]team.Team, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	items, _ := r.List(ctx)
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByExternalID(_ context.Context, externalID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byExternal[externalID]
	if !ok {
		return team.Team{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *TeamRepository) UpsertByExternalID(_ context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.byExternal[item.ExternalID]
	return r.put(item), nil
}
