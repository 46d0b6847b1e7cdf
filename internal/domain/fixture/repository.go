package fixture

import (
	"context"
	"time"
)

type UpcomingFilter struct {
	LeagueID int64
	TeamID   int64
	From     time.Time
	Limit    int
	Offset   int
}

// Repository exposes fixture persistence keyed by provider external id.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (Fixture, bool, error)
	UpsertByExternalID(ctx context.Context, item Fixture) (Fixture, bool, error)
	ListFinishedByTeam(ctx context.Context, teamID int64, season *int, limit int) ([]Fixture, error)
	ListFinishedBetween(ctx context.Context, teamA, teamB int64, limit int) ([]Fixture, error)
	ListUpcoming(ctx context.Context, filter UpcomingFilter) ([]Fixture, error)
	ListLive(ctx context.Context) ([]Fixture, error)
}
