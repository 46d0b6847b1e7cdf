package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID         int64          `db:"id"`
	ExternalID string         `db:"external_id"`
	LeagueID   int64          `db:"league_id"`
	Season     int            `db:"season"`
	HomeTeamID int64          `db:"home_team_id"`
	AwayTeamID int64          `db:"away_team_id"`
	MatchDate  time.Time      `db:"match_date"`
	Status     string         `db:"status"`
	HomeScore  *int           `db:"home_score"`
	AwayScore  *int           `db:"away_score"`
	Minute     *int           `db:"minute"`
	Matchday   int            `db:"matchday"`
	Venue      sql.NullString `db:"venue"`
	Source     sql.NullString `db:"source"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type fixtureInsertModel struct {
	ExternalID string    `db:"external_id"`
	LeagueID   int64     `db:"league_id"`
	Season     int       `db:"season"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	MatchDate  time.Time `db:"match_date"`
	Status     string    `db:"status"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	Minute     *int      `db:"minute"`
	Matchday   int       `db:"matchday"`
	Venue      *string   `db:"venue"`
	Source     *string   `db:"source"`
}

type fixtureUpsertResult struct {
	fixtureTableModel
	Inserted bool `db:"inserted"`
}
