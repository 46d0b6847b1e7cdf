package footballdata

type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type CompetitionInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Type   string `json:"type"`
	Emblem string `json:"emblem"`
}

type Season struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentMatchday *int   `json:"currentMatchday"`
}

type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
	Venue     string `json:"venue,omitempty"`
	Area      *Area  `json:"area,omitempty"`
}

type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Winner   string     `json:"winner"`
	Duration string     `json:"duration"`
	FullTime ScorePair  `json:"fullTime"`
	HalfTime *ScorePair `json:"halfTime"`
}

type Match struct {
	ID          int64           `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      string          `json:"status"`
	Minute      *int            `json:"minute"`
	Matchday    *int            `json:"matchday"`
	Stage       string          `json:"stage"`
	Venue       string          `json:"venue"`
	Area        *Area           `json:"area"`
	Competition CompetitionInfo `json:"competition"`
	Season      Season          `json:"season"`
	HomeTeam    Team            `json:"homeTeam"`
	AwayTeam    Team            `json:"awayTeam"`
	Score       Score           `json:"score"`
}

type MatchList struct {
	Matches []Match `json:"matches"`
}

type TableRow struct {
	Position       int     `json:"position"`
	Team           Team    `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Form           *string `json:"form"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
}

type StandingGroup struct {
	Stage string     `json:"stage"`
	Type  string     `json:"type"`
	Group *string    `json:"group"`
	Table []TableRow `json:"table"`
}

type StandingsResponse struct {
	Competition CompetitionInfo `json:"competition"`
	Season      Season          `json:"season"`
	Standings   []StandingGroup `json:"standings"`
}

// TotalTable returns the overall table, falling back to the first group.
func (r StandingsResponse) TotalTable() []TableRow {
	for _, group := range r.Standings {
		if group.Type == "TOTAL" {
			return group.Table
		}
	}
	if len(r.Standings) > 0 {
		return r.Standings[0].Table
	}
	return nil
}

type Competition struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Type          string  `json:"type"`
	Emblem        string  `json:"emblem"`
	Area          *Area   `json:"area"`
	CurrentSeason *Season `json:"currentSeason"`
}

type CompetitionList struct {
	Count        int           `json:"count"`
	Competitions []Competition `json:"competitions"`
}

type HeadToHeadAggregate struct {
	NumberOfMatches int `json:"numberOfMatches"`
	TotalGoals      int `json:"totalGoals"`
	HomeTeam        struct {
		ID     int64 `json:"id"`
		Wins   int   `json:"wins"`
		Draws  int   `json:"draws"`
		Losses int   `json:"losses"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID     int64 `json:"id"`
		Wins   int   `json:"wins"`
		Draws  int   `json:"draws"`
		Losses int   `json:"losses"`
	} `json:"awayTeam"`
}

type HeadToHead struct {
	Aggregates HeadToHeadAggregate `json:"aggregates"`
	Matches    []Match             `json:"matches"`
}
