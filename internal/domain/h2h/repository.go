package h2h

import "context"

type Repository interface {
	Get(ctx context.Context, team1ID, team2ID int64) (Record, bool, error)
	Upsert(ctx context.Context, record Record) (Record, error)
}
