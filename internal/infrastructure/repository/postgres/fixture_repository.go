package postgres

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, crerr.Wrap(err, "build get fixture by id query")
	}

	return r.get(ctx, query, args)
}

func (r *FixtureRepository) GetByExternalID(ctx context.Context, externalID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("external_id", strings.TrimSpace(externalID))).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, crerr.Wrap(err, "build get fixture by external id query")
	}

	return r.get(ctx, query, args)
}

func (r *FixtureRepository) get(ctx context.Context, query string, args []any) (fixture.Fixture, bool, error) {
	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, crerr.Wrap(err, "get fixture")
	}

	return fixtureFromRow(row), true, nil
}

// UpsertByExternalID reports created=true when the row did not exist before.
func (r *FixtureRepository) UpsertByExternalID(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	if strings.TrimSpace(item.ExternalID) == "" {
		return fixture.Fixture{}, false, crerr.New("fixture external id is required")
	}
	item = item.Normalize()

	insertModel := fixtureInsertModel{
		ExternalID: item.ExternalID,
		LeagueID:   item.LeagueID,
		Season:     item.Season,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		MatchDate:  item.MatchDate.UTC(),
		Status:     string(item.Status),
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Minute:     item.Minute,
		Matchday:   item.Matchday,
		Venue:      optionalText(item.Venue),
		Source:     optionalText(item.Source),
	}

	// xmax is zero only for freshly inserted tuples.
	query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (external_id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    season = EXCLUDED.season,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    match_date = EXCLUDED.match_date,
    status = EXCLUDED.status,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    minute = EXCLUDED.minute,
    matchday = EXCLUDED.matchday,
    venue = COALESCE(EXCLUDED.venue, fixtures.venue),
    source = EXCLUDED.source,
    updated_at = NOW()
RETURNING *, (xmax = 0) AS inserted`)
	if err != nil {
		return fixture.Fixture{}, false, crerr.Wrap(err, "build upsert fixture query")
	}

	var row fixtureUpsertResult
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return fixture.Fixture{}, false, crerr.Wrapf(err, "upsert fixture %s", item.ExternalID)
	}

	return fixtureFromRow(row.fixtureTableModel), row.Inserted, nil
}

func (r *FixtureRepository) ListFinishedByTeam(ctx context.Context, teamID int64, season *int, limit int) ([]fixture.Fixture, error) {
	conditions := []qb.Condition{
		qb.Eq("status", string(fixture.StatusFinished)),
		involvesTeam(teamID),
	}
	if season != nil {
		conditions = append(conditions, qb.Eq("season", *season))
	}

	query, args, err := qb.Select("*").From("fixtures").
		Where(conditions...).
		OrderBy("match_date DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list finished fixtures by team query")
	}

	return r.list(ctx, query, args)
}

func (r *FixtureRepository) ListFinishedBetween(ctx context.Context, teamA, teamB int64, limit int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("status", string(fixture.StatusFinished)),
			qb.Or(
				qb.And(qb.Eq("home_team_id", teamA), qb.Eq("away_team_id", teamB)),
				qb.And(qb.Eq("home_team_id", teamB), qb.Eq("away_team_id", teamA)),
			),
		).
		OrderBy("match_date DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list meetings query")
	}

	return r.list(ctx, query, args)
}

func (r *FixtureRepository) ListUpcoming(ctx context.Context, filter fixture.UpcomingFilter) ([]fixture.Fixture, error) {
	conditions := []qb.Condition{
		qb.Eq("status", string(fixture.StatusScheduled)),
		qb.Gte("match_date", filter.From.UTC()),
	}
	if filter.LeagueID > 0 {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}
	if filter.TeamID > 0 {
		conditions = append(conditions, involvesTeam(filter.TeamID))
	}

	query, args, err := qb.Select("*").From("fixtures").
		Where(conditions...).
		OrderBy("match_date", "id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list upcoming fixtures query")
	}

	return r.list(ctx, query, args)
}

func (r *FixtureRepository) ListLive(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.In("status", []any{string(fixture.StatusLive), string(fixture.StatusHalftime)})).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list live fixtures query")
	}

	return r.list(ctx, query, args)
}

func involvesTeam(teamID int64) qb.Condition {
	return qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID))
}

func (r *FixtureRepository) list(ctx context.Context, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select fixtures")
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}

	return out, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		LeagueID:   row.LeagueID,
		Season:     row.Season,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		MatchDate:  row.MatchDate.UTC(),
		Status:     fixture.Status(row.Status),
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Minute:     row.Minute,
		Matchday:   row.Matchday,
		Venue:      row.Venue.String,
		Source:     row.Source.String,
	}.Normalize()
}
