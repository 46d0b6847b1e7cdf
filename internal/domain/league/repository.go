package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	GetByExternalID(ctx context.Context, externalID string, season int) (League, bool, error)
	UpsertByExternalID(ctx context.Context, item League) (League, error)
}
