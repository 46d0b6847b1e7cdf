package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) Get(ctx context.Context, teamID int64, season int) (teamstats.TeamStats, bool, error) {
	query, args, err := qb.Select("*").From("team_stats").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return teamstats.TeamStats{}, false, crerr.Wrap(err, "build get team stats query")
	}

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.TeamStats{}, false, nil
		}
		return teamstats.TeamStats{}, false, crerr.Wrapf(err, "get team stats team=%d season=%d", teamID, season)
	}

	return teamStatsFromRow(row), true, nil
}

func (r *TeamStatsRepository) Upsert(ctx context.Context, stats teamstats.TeamStats) (teamstats.TeamStats, error) {
	insertModel := teamStatsInsertModel{
		TeamID:        stats.TeamID,
		Season:        stats.Season,
		MatchesPlayed: stats.MatchesPlayed,
		Wins:          stats.Wins,
		Draws:         stats.Draws,
		Losses:        stats.Losses,
		GoalsFor:      stats.GoalsFor,
		GoalsAgainst:  stats.GoalsAgainst,
		CleanSheets:   stats.CleanSheets,
		HomeWins:      stats.HomeWins,
		AwayWins:      stats.AwayWins,
		Form:          optionalText(stats.Form),
		Points:        stats.Points,
	}

	query, args, err := qb.InsertModel("team_stats", insertModel, `ON CONFLICT (team_id, season)
DO UPDATE SET
    matches_played = EXCLUDED.matches_played,
    wins = EXCLUDED.wins,
    draws = EXCLUDED.draws,
    losses = EXCLUDED.losses,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    clean_sheets = EXCLUDED.clean_sheets,
    home_wins = EXCLUDED.home_wins,
    away_wins = EXCLUDED.away_wins,
    form = EXCLUDED.form,
    points = EXCLUDED.points,
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return teamstats.TeamStats{}, crerr.Wrap(err, "build upsert team stats query")
	}

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return teamstats.TeamStats{}, crerr.Wrapf(err, "upsert team stats team=%d season=%d", stats.TeamID, stats.Season)
	}

	return teamStatsFromRow(row), nil
}

func (r *TeamStatsRepository) UpdatePosition(ctx context.Context, teamID int64, season int, position int) error {
	query, args, err := qb.Update("team_stats").
		Set("league_position", position).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update league position query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "update league position team=%d season=%d", teamID, season)
	}

	return nil
}

func teamStatsFromRow(row teamStatsTableModel) teamstats.TeamStats {
	return teamstats.TeamStats{
		TeamID:         row.TeamID,
		Season:         row.Season,
		MatchesPlayed:  row.MatchesPlayed,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		CleanSheets:    row.CleanSheets,
		HomeWins:       row.HomeWins,
		AwayWins:       row.AwayWins,
		Form:           row.Form.String,
		LeaguePosition: row.LeaguePosition,
		Points:         row.Points,
		UpdatedAt:      row.UpdatedAt,
	}
}
