package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_TeamFixturesPage(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := Select("*").
		From("fixtures").
		Where(
			Eq("status", "scheduled"),
			Gte("match_date", from),
			Or(Eq("home_team_id", int64(3)), Eq("away_team_id", int64(3))),
		).
		OrderBy("match_date", "id").
		Limit(20).
		Offset(40).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM fixtures WHERE status = $1 AND match_date >= $2 AND (home_team_id = $3 OR away_team_id = $4) ORDER BY match_date, id LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []any{"scheduled", from, int64(3), int64(3)}, args)
}

func TestSelect_MeetingsEitherOrientation(t *testing.T) {
	query, args, err := Select("id", "match_date").
		From("fixtures").
		Where(Or(
			And(Eq("home_team_id", int64(1)), Eq("away_team_id", int64(2))),
			And(Eq("home_team_id", int64(2)), Eq("away_team_id", int64(1))),
		)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, match_date FROM fixtures WHERE ((home_team_id = $1 AND away_team_id = $2) OR (home_team_id = $3 AND away_team_id = $4))",
		query)
	assert.Len(t, args, 4)
}

func TestSelect_InAndZeroLimit(t *testing.T) {
	query, args, err := Select().
		From("fixtures").
		Where(In("status", []any{"live", "halftime"})).
		Limit(0).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM fixtures WHERE status IN ($1, $2)", query)
	assert.Equal(t, []any{"live", "halftime"}, args)

	query, args, err = Select("*").From("fixtures").Where(In("status", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM fixtures WHERE FALSE", query)
	assert.Empty(t, args)
}

func TestSelect_RequiresTable(t *testing.T) {
	_, _, err := Select("*").ToSQL()
	assert.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ExternalID string `db:"external_id"`
		HomeScore  *int   `db:"home_score"`
		Ignored    string `db:"-"`
		Untagged   float64
	}

	query, args, err := InsertModel("fixtures", &row{ExternalID: "fd-1"}, " ON CONFLICT (external_id) DO NOTHING ")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO fixtures (external_id, home_score) VALUES ($1, $2) ON CONFLICT (external_id) DO NOTHING", query)
	require.Len(t, args, 2)
	assert.Equal(t, "fd-1", args[0])
}

func TestInsertModel_RejectsBadModels(t *testing.T) {
	var nilRow *struct {
		ID int64 `db:"id"`
	}
	_, _, err := InsertModel("teams", nilRow, "")
	assert.Error(t, err)

	_, _, err = InsertModel("teams", 42, "")
	assert.Error(t, err)

	_, _, err = InsertModel("teams", struct{ Name string }{Name: "x"}, "")
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	query, args, err := Update("team_stats").
		Set("league_position", 2).
		SetExpr("updated_at", "NOW()").
		Where(Eq("team_id", int64(1)), Eq("season", 2025)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE team_stats SET league_position = $1, updated_at = NOW() WHERE team_id = $2 AND season = $3", query)
	assert.Equal(t, []any{2, int64(1), 2025}, args)
}

func TestUpdate_RequiresConditionsAndColumns(t *testing.T) {
	_, _, err := Update("team_stats").Set("league_position", 1).ToSQL()
	assert.Error(t, err)

	_, _, err = Update("team_stats").Where(Eq("team_id", int64(1))).ToSQL()
	assert.Error(t, err)
}
