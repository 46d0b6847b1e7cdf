package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID         int64          `db:"id"`
	ExternalID string         `db:"external_id"`
	Name       string         `db:"name"`
	ShortCode  sql.NullString `db:"short_code"`
	CrestURL   sql.NullString `db:"crest_url"`
	LeagueID   sql.NullInt64  `db:"league_id"`
	Country    sql.NullString `db:"country"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	ExternalID string  `db:"external_id"`
	Name       string  `db:"name"`
	ShortCode  *string `db:"short_code"`
	CrestURL   *string `db:"crest_url"`
	LeagueID   *int64  `db:"league_id"`
	Country    *string `db:"country"`
}
