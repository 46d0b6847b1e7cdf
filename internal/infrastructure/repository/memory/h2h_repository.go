package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/h2h"
)

type H2HRepository struct {
	mu    sync.RWMutex
	items map[[2]int64]h2h.Record
}

func NewH2HRepository() *H2HRepository {
	return &H2HRepository{items: make(map[[2]int64]h2h.Record)}
}

func (r *H2HRepository) Get(_ context.Context, team1ID, team2ID int64) (h2h.Record, bool, error) {
	lo, hi, _ := h2h.Canonical(team1ID, team2ID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[[2]int64{lo, hi}]
	return item, ok, nil
}

func (r *H2HRepository) Upsert(_ context.Context, record h2h.Record) (h2h.Record, error) {
	lo, hi, swapped := h2h.Canonical(record.Team1ID, record.Team2ID)
	if swapped {
		record.Team1ID, record.Team2ID = lo, hi
		record.Team1Wins, record.Team2Wins = record.Team2Wins, record.Team1Wins
	}
	record.UpdatedAt = time.Now().UTC()
	record.LastFive = append([]h2h.MatchSummary(nil), record.LastFive...)

	r.mu.Lock()
	r.items[[2]int64{lo, hi}] = record
	r.mu.Unlock()
	return record, nil
}
