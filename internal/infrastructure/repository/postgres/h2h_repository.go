package postgres

import (
	"context"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-stats/internal/domain/h2h"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type H2HRepository struct {
	db *sqlx.DB
}

func NewH2HRepository(db *sqlx.DB) *H2HRepository {
	return &H2HRepository{db: db}
}

func (r *H2HRepository) Get(ctx context.Context, team1ID, team2ID int64) (h2h.Record, bool, error) {
	lo, hi, _ := h2h.Canonical(team1ID, team2ID)

	query, args, err := qb.Select("*").From("h2h_records").
		Where(
			qb.Eq("team1_id", lo),
			qb.Eq("team2_id", hi),
		).
		ToSQL()
	if err != nil {
		return h2h.Record{}, false, crerr.Wrap(err, "build get h2h record query")
	}

	var row h2hTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return h2h.Record{}, false, nil
		}
		return h2h.Record{}, false, crerr.Wrapf(err, "get h2h record %d-%d", lo, hi)
	}

	record, err := h2hFromRow(row)
	if err != nil {
		return h2h.Record{}, false, err
	}
	return record, true, nil
}

// Upsert stores record in canonical order, swapping sides when needed.
func (r *H2HRepository) Upsert(ctx context.Context, record h2h.Record) (h2h.Record, error) {
	lo, hi, swapped := h2h.Canonical(record.Team1ID, record.Team2ID)
	if swapped {
		record.Team1ID, record.Team2ID = lo, hi
		record.Team1Wins, record.Team2Wins = record.Team2Wins, record.Team1Wins
	}
	if record.LastFive == nil {
		record.LastFive = []h2h.MatchSummary{}
	}

	lastFive, err := sonic.MarshalString(record.LastFive)
	if err != nil {
		return h2h.Record{}, crerr.Wrap(err, "encode h2h last five")
	}

	insertModel := h2hInsertModel{
		Team1ID:   record.Team1ID,
		Team2ID:   record.Team2ID,
		Team1Wins: record.Team1Wins,
		Team2Wins: record.Team2Wins,
		Draws:     record.Draws,
		LastFive:  lastFive,
	}

	query, args, err := qb.InsertModel("h2h_records", insertModel, `ON CONFLICT (team1_id, team2_id)
DO UPDATE SET
    team1_wins = EXCLUDED.team1_wins,
    team2_wins = EXCLUDED.team2_wins,
    draws = EXCLUDED.draws,
    last_five = EXCLUDED.last_five,
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return h2h.Record{}, crerr.Wrap(err, "build upsert h2h record query")
	}

	var row h2hTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return h2h.Record{}, crerr.Wrapf(err, "upsert h2h record %d-%d", lo, hi)
	}

	return h2hFromRow(row)
}

func h2hFromRow(row h2hTableModel) (h2h.Record, error) {
	out := h2h.Record{
		Team1ID:   row.Team1ID,
		Team2ID:   row.Team2ID,
		Team1Wins: row.Team1Wins,
		Team2Wins: row.Team2Wins,
		Draws:     row.Draws,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.LastFive) > 0 {
		if err := sonic.Unmarshal(row.LastFive, &out.LastFive); err != nil {
			return h2h.Record{}, crerr.Wrapf(err, "decode h2h last five %d-%d", row.Team1ID, row.Team2ID)
		}
	}
	return out, nil
}
