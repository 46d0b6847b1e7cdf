package openligadb

type Team struct {
	TeamID        int64  `json:"teamId"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName"`
	TeamIconURL   string `json:"teamIconUrl"`
	TeamGroupName string `json:"teamGroupName"`
}

type Group struct {
	GroupName    string `json:"groupName"`
	GroupOrderID int    `json:"groupOrderID"`
	GroupID      int64  `json:"groupID"`
}

// Result type ids used by OpenLigaDB.
const (
	ResultTypeHalfTime = 1
	ResultTypeFinal    = 2
)

type Result struct {
	ResultID      int64  `json:"resultID"`
	ResultName    string `json:"resultName"`
	PointsTeam1   *int   `json:"pointsTeam1"`
	PointsTeam2   *int   `json:"pointsTeam2"`
	ResultOrderID int    `json:"resultOrderID"`
	ResultTypeID  int    `json:"resultTypeID"`
}

type Location struct {
	LocationID      int64  `json:"locationID"`
	LocationCity    string `json:"locationCity"`
	LocationStadium string `json:"locationStadium"`
}

type Match struct {
	MatchID          int64     `json:"matchID"`
	MatchDateTime    string    `json:"matchDateTime"`
	MatchDateTimeUTC string    `json:"matchDateTimeUTC"`
	TimeZoneID       string    `json:"timeZoneID"`
	LeagueID         int64     `json:"leagueId"`
	LeagueName       string    `json:"leagueName"`
	LeagueSeason     int       `json:"leagueSeason"`
	LeagueShortcut   string    `json:"leagueShortcut"`
	Group            *Group    `json:"group"`
	Team1            *Team     `json:"team1"`
	Team2            *Team     `json:"team2"`
	MatchIsFinished  bool      `json:"matchIsFinished"`
	MatchResults     []Result  `json:"matchResults"`
	Location         *Location `json:"location"`
}

// Result returns the first result of the given type.
func (m Match) Result(typeID int) *Result {
	for i := range m.MatchResults {
		if m.MatchResults[i].ResultTypeID == typeID {
			return &m.MatchResults[i]
		}
	}
	return nil
}

type TableRow struct {
	TeamInfoID    int64  `json:"teamInfoId"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName"`
	TeamIconURL   string `json:"teamIconUrl"`
	TablePosition int    `json:"tablePosition"`
	Points        int    `json:"points"`
	OpponentGoals int    `json:"opponentGoals"`
	Goals         int    `json:"goals"`
	Matches       int    `json:"matches"`
	Won           int    `json:"won"`
	Lost          int    `json:"lost"`
	Draw          int    `json:"draw"`
	GoalDiff      int    `json:"goalDiff"`
}

type League struct {
	LeagueID       int64  `json:"leagueId"`
	LeagueName     string `json:"leagueName"`
	LeagueShortcut string `json:"leagueShortcut"`
	LeagueSeason   string `json:"leagueSeason"`
}
