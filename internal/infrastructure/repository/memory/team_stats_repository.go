package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
)

type teamSeasonKey struct {
	teamID int64
	season int
}

type TeamStatsRepository struct {
	mu    sync.RWMutex
	items map[teamSeasonKey]teamstats.TeamStats
	now   func() time.Time
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{
		items: make(map[teamSeasonKey]teamstats.TeamStats),
		now:   time.Now,
	}
}

func (r *TeamStatsRepository) Get(_ context.Context, teamID int64, season int) (teamstats.TeamStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamSeasonKey{teamID: teamID, season: season}]
	return item, ok, nil
}

func (r *TeamStatsRepository) Upsert(_ context.Context, stats teamstats.TeamStats) (teamstats.TeamStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamSeasonKey{teamID: stats.TeamID, season: stats.Season}
	if stats.LeaguePosition == nil {
		if existing, ok := r.items[key]; ok {
			stats.LeaguePosition = existing.LeaguePosition
		}
	}
	stats.UpdatedAt = r.now().UTC()
	r.items[key] = stats
	return stats, nil
}

func (r *TeamStatsRepository) UpdatePosition(_ context.Context, teamID int64, season int, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamSeasonKey{teamID: teamID, season: season}
	item, ok := r.items[key]
	if !ok {
		return nil
	}
	item.LeaguePosition = &position
	r.items[key] = item
	return nil
}
