package postgres

import (
	"database/sql"
	"time"
)

type teamStatsTableModel struct {
	ID             int64          `db:"id"`
	TeamID         int64          `db:"team_id"`
	Season         int            `db:"season"`
	MatchesPlayed  int            `db:"matches_played"`
	Wins           int            `db:"wins"`
	Draws          int            `db:"draws"`
	Losses         int            `db:"losses"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	CleanSheets    int            `db:"clean_sheets"`
	HomeWins       int            `db:"home_wins"`
	AwayWins       int            `db:"away_wins"`
	Form           sql.NullString `db:"form"`
	LeaguePosition *int           `db:"league_position"`
	Points         int            `db:"points"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// teamStatsInsertModel leaves league_position out so recomputing stats never
// clears a stored table position.
type teamStatsInsertModel struct {
	TeamID        int64   `db:"team_id"`
	Season        int     `db:"season"`
	MatchesPlayed int     `db:"matches_played"`
	Wins          int     `db:"wins"`
	Draws         int     `db:"draws"`
	Losses        int     `db:"losses"`
	GoalsFor      int     `db:"goals_for"`
	GoalsAgainst  int     `db:"goals_against"`
	CleanSheets   int     `db:"clean_sheets"`
	HomeWins      int     `db:"home_wins"`
	AwayWins      int     `db:"away_wins"`
	Form          *string `db:"form"`
	Points        int     `db:"points"`
}
