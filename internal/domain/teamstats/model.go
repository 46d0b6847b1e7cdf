package teamstats

import "time"

// FormLength is the number of recent finished matches kept in TeamStats.Form.
const FormLength = 5

type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

func ResultFor(teamScore, opponentScore int) Result {
	switch {
	case teamScore > opponentScore:
		return ResultWin
	case teamScore < opponentScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// TeamStats is the per-season aggregate for one team. It is derived from
// finished fixtures and can be recomputed at any time.
//
// Form lists results most-recent-first with no separator: "WDL" means the
// latest match was won and the oldest of the three was lost.
type TeamStats struct {
	TeamID         int64
	Season         int
	MatchesPlayed  int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	CleanSheets    int
	HomeWins       int
	AwayWins       int
	Form           string
	LeaguePosition *int
	Points         int
	UpdatedAt      time.Time
}

func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}
