package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/domain/team"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams query")
	}

	return r.list(ctx, query, args)
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams by league query")
	}

	return r.list(ctx, query, args)
}

func (r *TeamRepository) list(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, crerr.Wrap(err, "build get team by id query")
	}

	return r.get(ctx, query, args)
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, crerr.Wrap(err, "build get team by external id query")
	}

	return r.get(ctx, query, args)
}

func (r *TeamRepository) get(ctx context.Context, query string, args []any) (team.Team, bool, error) {
	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "get team")
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) UpsertByExternalID(ctx context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	insertModel := teamInsertModel{
		ExternalID: item.ExternalID,
		Name:       item.Name,
		ShortCode:  optionalText(item.ShortCode),
		CrestURL:   optionalText(item.CrestURL),
		LeagueID:   positiveID(item.LeagueID),
		Country:    optionalText(item.Country),
	}

	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (external_id)
DO UPDATE SET
    name = EXCLUDED.name,
    short_code = COALESCE(EXCLUDED.short_code, teams.short_code),
    crest_url = COALESCE(EXCLUDED.crest_url, teams.crest_url),
    league_id = COALESCE(EXCLUDED.league_id, teams.league_id),
    country = COALESCE(EXCLUDED.country, teams.country),
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return team.Team{}, crerr.Wrap(err, "build upsert team query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return team.Team{}, crerr.Wrapf(err, "upsert team %s", item.ExternalID)
	}

	return teamFromRow(row), nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		ShortCode:  row.ShortCode.String,
		CrestURL:   row.CrestURL.String,
		LeagueID:   row.LeagueID.Int64,
		Country:    row.Country.String,
	}
}
