package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/domain/league"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, crerr.Wrap(err, "build get league by id query")
	}

	return r.get(ctx, query, args)
}

func (r *LeagueRepository) GetByExternalID(ctx context.Context, externalID string, season int) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("external_id", externalID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, crerr.Wrap(err, "build get league by external id query")
	}

	return r.get(ctx, query, args)
}

func (r *LeagueRepository) get(ctx context.Context, query string, args []any) (league.League, bool, error) {
	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, crerr.Wrap(err, "get league")
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) UpsertByExternalID(ctx context.Context, item league.League) (league.League, error) {
	if err := item.Validate(); err != nil {
		return league.League{}, err
	}

	insertModel := leagueInsertModel{
		ExternalID: item.ExternalID,
		Name:       item.Name,
		Country:    optionalText(item.Country),
		Season:     item.Season,
		CrestURL:   optionalText(item.CrestURL),
	}

	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (external_id, season)
DO UPDATE SET
    name = EXCLUDED.name,
    country = COALESCE(EXCLUDED.country, leagues.country),
    crest_url = COALESCE(EXCLUDED.crest_url, leagues.crest_url),
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return league.League{}, crerr.Wrap(err, "build upsert league query")
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return league.League{}, crerr.Wrapf(err, "upsert league %s", item.ExternalID)
	}

	return leagueFromRow(row), nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Country:    row.Country.String,
		Season:     row.Season,
		CrestURL:   row.CrestURL.String,
	}
}
