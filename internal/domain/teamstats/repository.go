package teamstats

import "context"

type Repository interface {
	Get(ctx context.Context, teamID int64, season int) (TeamStats, bool, error)
	Upsert(ctx context.Context, stats TeamStats) (TeamStats, error)
	UpdatePosition(ctx context.Context, teamID int64, season int, position int) error
}
