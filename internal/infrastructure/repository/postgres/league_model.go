package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID         int64          `db:"id"`
	ExternalID string         `db:"external_id"`
	Name       string         `db:"name"`
	Country    sql.NullString `db:"country"`
	Season     int            `db:"season"`
	CrestURL   sql.NullString `db:"crest_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type leagueInsertModel struct {
	ExternalID string  `db:"external_id"`
	Name       string  `db:"name"`
	Country    *string `db:"country"`
	Season     int     `db:"season"`
	CrestURL   *string `db:"crest_url"`
}
