package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the local dataset into an empty database. Seed ids are
// remapped onto the ids Postgres assigns.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insert := func(query string, arg map[string]any) (int64, error) {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return 0, err
		}
		var id int64
		if err := tx.GetContext(ctx, &id, tx.Rebind(sqlQuery), args...); err != nil {
			return 0, err
		}
		return id, nil
	}

	leagueIDs := make(map[int64]int64)
	for _, l := range memory.SeedLeagues() {
		id, err := insert(`
INSERT INTO leagues (external_id, name, country, season)
VALUES (:external_id, :name, :country, :season)
RETURNING id`, map[string]any{
			"external_id": l.ExternalID,
			"name":        l.Name,
			"country":     l.Country,
			"season":      l.Season,
		})
		if err != nil {
			return fmt.Errorf("seed league %s: %w", l.ExternalID, err)
		}
		leagueIDs[l.ID] = id
	}

	teamIDs := make(map[int64]int64)
	for _, t := range memory.SeedTeams() {
		id, err := insert(`
INSERT INTO teams (external_id, name, short_code, league_id, country)
VALUES (:external_id, :name, :short_code, :league_id, :country)
RETURNING id`, map[string]any{
			"external_id": t.ExternalID,
			"name":        t.Name,
			"short_code":  t.ShortCode,
			"league_id":   leagueIDs[t.LeagueID],
			"country":     t.Country,
		})
		if err != nil {
			return fmt.Errorf("seed team %s: %w", t.ExternalID, err)
		}
		teamIDs[t.ID] = id
	}

	for _, f := range memory.SeedFixtures() {
		_, err := insert(`
INSERT INTO fixtures (external_id, league_id, season, home_team_id, away_team_id, match_date, status, home_score, away_score, matchday, source)
VALUES (:external_id, :league_id, :season, :home_team_id, :away_team_id, :match_date, :status, :home_score, :away_score, :matchday, :source)
RETURNING id`, map[string]any{
			"external_id":  f.ExternalID,
			"league_id":    leagueIDs[f.LeagueID],
			"season":       f.Season,
			"home_team_id": teamIDs[f.HomeTeamID],
			"away_team_id": teamIDs[f.AwayTeamID],
			"match_date":   f.MatchDate.UTC(),
			"status":       string(f.Status),
			"home_score":   f.HomeScore,
			"away_score":   f.AwayScore,
			"matchday":     f.Matchday,
			"source":       f.Source,
		})
		if err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
