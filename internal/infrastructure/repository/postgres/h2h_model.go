package postgres

import "time"

type h2hTableModel struct {
	ID        int64     `db:"id"`
	Team1ID   int64     `db:"team1_id"`
	Team2ID   int64     `db:"team2_id"`
	Team1Wins int       `db:"team1_wins"`
	Team2Wins int       `db:"team2_wins"`
	Draws     int       `db:"draws"`
	LastFive  []byte    `db:"last_five"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type h2hInsertModel struct {
	Team1ID   int64  `db:"team1_id"`
	Team2ID   int64  `db:"team2_id"`
	Team1Wins int    `db:"team1_wins"`
	Team2Wins int    `db:"team2_wins"`
	Draws     int    `db:"draws"`
	LastFive  string `db:"last_five"`
}
