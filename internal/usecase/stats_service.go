package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/h2h"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/standing"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/platform/tracing"
)

const (
	DefaultFormLength = 5
	MaxFormLength     = 20
	DefaultSeason     = 2025
)

type TeamProfile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CrestURL string `json:"crestUrl,omitempty"`
	Country  string `json:"country,omitempty"`
}

func profileOf(t team.Team) TeamProfile {
	return TeamProfile{ID: t.ID, Name: t.Name, CrestURL: t.CrestURL, Country: t.Country}
}

type TeamStatsView struct {
	MatchesPlayed  int       `json:"matchesPlayed"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	CleanSheets    int       `json:"cleanSheets"`
	HomeWins       int       `json:"homeWins"`
	AwayWins       int       `json:"awayWins"`
	Form           *string   `json:"form"`
	LeaguePosition *int      `json:"leaguePosition"`
	Points         int       `json:"points"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func statsView(s teamstats.TeamStats) TeamStatsView {
	view := TeamStatsView{
		MatchesPlayed:  s.MatchesPlayed,
		Wins:           s.Wins,
		Draws:          s.Draws,
		Losses:         s.Losses,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference(),
		CleanSheets:    s.CleanSheets,
		HomeWins:       s.HomeWins,
		AwayWins:       s.AwayWins,
		LeaguePosition: s.LeaguePosition,
		Points:         s.Points,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.Form != "" {
		form := s.Form
		view.Form = &form
	}
	return view
}

type TeamStatsResponse struct {
	Team   TeamProfile   `json:"team"`
	Season int           `json:"season"`
	Stats  TeamStatsView `json:"stats"`
}

type FormScore struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

type FormMatch struct {
	FixtureID int64            `json:"fixtureId"`
	Date      time.Time        `json:"date"`
	Opponent  team.Summary     `json:"opponent"`
	IsHome    bool             `json:"isHome"`
	Score     FormScore        `json:"score"`
	Result    teamstats.Result `json:"result"`
	LeagueID  int64            `json:"leagueId"`
}

type FormSummary struct {
	Played     int    `json:"played"`
	Wins       int    `json:"wins"`
	Draws      int    `json:"draws"`
	Losses     int    `json:"losses"`
	FormString string `json:"formString"`
}

// FormResponse lists matches most recent first; FormString follows the same
// order.
type FormResponse struct {
	TeamID  int64       `json:"teamId"`
	Matches []FormMatch `json:"matches"`
	Summary FormSummary `json:"summary"`
}

type H2HCounts struct {
	TotalMatches int `json:"totalMatches"`
	Team1Wins    int `json:"team1Wins"`
	Team2Wins    int `json:"team2Wins"`
	Draws        int `json:"draws"`
}

type H2HMatch struct {
	FixtureID int64     `json:"fixtureId"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
}

// H2HResponse is oriented to the caller's team order.
type H2HResponse struct {
	Team1       team.Summary `json:"team1"`
	Team2       team.Summary `json:"team2"`
	Stats       H2HCounts    `json:"stats"`
	LastMatches []H2HMatch   `json:"lastMatches"`
}

type CompareResponse struct {
	Team1 TeamStatsResponse `json:"team1"`
	Team2 TeamStatsResponse `json:"team2"`
	H2H   H2HResponse       `json:"h2h"`
}

type RecalcResult struct {
	Season  int `json:"season"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// h2hSnapshot is the canonical (lower id first) head-to-head view that gets
// cached. Callers orient it to their own order.
type h2hSnapshot struct {
	Lower       team.Summary       `json:"lower"`
	Higher      team.Summary       `json:"higher"`
	LowerWins   int                `json:"lowerWins"`
	HigherWins  int                `json:"higherWins"`
	Draws       int                `json:"draws"`
	LastMatches []h2h.MatchSummary `json:"lastMatches"`
}

func (s h2hSnapshot) orient(first int64) H2HResponse {
	out := H2HResponse{
		Team1: s.Lower,
		Team2: s.Higher,
		Stats: H2HCounts{
			TotalMatches: s.LowerWins + s.HigherWins + s.Draws,
			Team1Wins:    s.LowerWins,
			Team2Wins:    s.HigherWins,
			Draws:        s.Draws,
		},
		LastMatches: make([]H2HMatch, 0, len(s.LastMatches)),
	}
	if first != s.Lower.ID {
		out.Team1, out.Team2 = s.Higher, s.Lower
		out.Stats.Team1Wins, out.Stats.Team2Wins = s.HigherWins, s.LowerWins
	}
	for _, item := range s.LastMatches {
		out.LastMatches = append(out.LastMatches, H2HMatch{
			FixtureID: item.FixtureID,
			Date:      item.Date,
			HomeTeam:  item.HomeTeam,
			AwayTeam:  item.AwayTeam,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		})
	}
	return out
}

type StatsServiceConfig struct {
	Teams         team.Repository
	Leagues       league.Repository
	Fixtures      fixture.Repository
	TeamStats     teamstats.Repository
	H2H           h2h.Repository
	Cache         cache.Cache
	TTLs          cache.TTLs
	Logger        *logging.Logger
	CurrentSeason int
	// RecalcWorkers bounds RecalculateAllStats concurrency. 1 runs teams
	// sequentially.
	RecalcWorkers int
}

type StatsService struct {
	teams         team.Repository
	leagues       league.Repository
	fixtures      fixture.Repository
	teamStats     teamstats.Repository
	h2h           h2h.Repository
	cache         cache.Cache
	ttl           cache.TTLs
	logger        *logging.Logger
	currentSeason int
	recalcWorkers int
}

func NewStatsService(cfg StatsServiceConfig) *StatsService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NullCache{}
	}
	season := cfg.CurrentSeason
	if season <= 0 {
		season = DefaultSeason
	}
	workers := cfg.RecalcWorkers
	if workers < 1 {
		workers = 1
	}

	return &StatsService{
		teams:         cfg.Teams,
		leagues:       cfg.Leagues,
		fixtures:      cfg.Fixtures,
		teamStats:     cfg.TeamStats,
		h2h:           cfg.H2H,
		cache:         c,
		ttl:           cfg.TTLs.WithDefaults(),
		logger:        logger,
		currentSeason: season,
		recalcWorkers: workers,
	}
}

func (s *StatsService) season(season *int) int {
	if season != nil && *season > 0 {
		return *season
	}
	return s.currentSeason
}

func (s *StatsService) requireTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	item, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *StatsService) GetTeamStats(ctx context.Context, teamID int64, season *int) (TeamStatsResponse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeamStats")
	defer span.End()

	targetSeason := s.season(season)
	key := cache.Key(cache.CategoryTeam, teamID, targetSeason)
	if cached, ok := cache.GetJSON[TeamStatsResponse](ctx, s.cache, key); ok {
		return cached, nil
	}

	item, err := s.requireTeam(ctx, teamID)
	if err != nil {
		return TeamStatsResponse{}, err
	}

	stats, exists, err := s.teamStats.Get(ctx, teamID, targetSeason)
	if err != nil {
		return TeamStatsResponse{}, fmt.Errorf("get team stats: %w", err)
	}
	if !exists {
		stats, err = s.CalculateTeamStats(ctx, teamID, targetSeason)
		if err != nil {
			return TeamStatsResponse{}, err
		}
	}

	resp := TeamStatsResponse{
		Team:   profileOf(item),
		Season: targetSeason,
		Stats:  statsView(stats),
	}
	cache.SetJSON(ctx, s.cache, key, resp, s.ttl.TeamStats)
	return resp, nil
}

// CalculateTeamStats recomputes the season aggregate from finished fixtures
// and stores it.
func (s *StatsService) CalculateTeamStats(ctx context.Context, teamID int64, season int) (teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CalculateTeamStats")
	defer span.End()

	if teamID <= 0 {
		return teamstats.TeamStats{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		season = s.currentSeason
	}

	items, err := s.fixtures.ListFinishedByTeam(ctx, teamID, &season, 0)
	if err != nil {
		tracing.Fail(span, err)
		return teamstats.TeamStats{}, fmt.Errorf("list finished fixtures team=%d: %w", teamID, err)
	}

	stats, err := s.teamStats.Upsert(ctx, teamstats.Compute(teamID, season, items))
	if err != nil {
		tracing.Fail(span, err)
		return teamstats.TeamStats{}, fmt.Errorf("upsert team stats team=%d: %w", teamID, err)
	}
	return stats, nil
}

func (s *StatsService) GetTeamForm(ctx context.Context, teamID int64, lastN int) (FormResponse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeamForm")
	defer span.End()

	if lastN == 0 {
		lastN = DefaultFormLength
	}
	if lastN < 1 || lastN > MaxFormLength {
		return FormResponse{}, fmt.Errorf("%w: last must be between 1 and %d", ErrInvalidInput, MaxFormLength)
	}

	key := cache.Key(cache.CategoryForm, teamID, lastN)
	if cached, ok := cache.GetJSON[FormResponse](ctx, s.cache, key); ok {
		return cached, nil
	}

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return FormResponse{}, err
	}

	items, err := s.fixtures.ListFinishedByTeam(ctx, teamID, nil, lastN)
	if err != nil {
		return FormResponse{}, fmt.Errorf("list finished fixtures team=%d: %w", teamID, err)
	}
	teamstats.SortRecentFirst(items)
	if len(items) > lastN {
		items = items[:lastN]
	}

	opponents, err := s.summaries(ctx, items)
	if err != nil {
		return FormResponse{}, err
	}

	resp := FormResponse{TeamID: teamID, Matches: make([]FormMatch, 0, len(items))}
	form := make([]byte, 0, len(items))
	for _, item := range items {
		teamScore, opponentScore := teamstats.Perspective(item, teamID)
		result := teamstats.ResultFor(teamScore, opponentScore)
		isHome := item.HomeTeamID == teamID
		opponentID := item.HomeTeamID
		if isHome {
			opponentID = item.AwayTeamID
		}

		resp.Matches = append(resp.Matches, FormMatch{
			FixtureID: item.ID,
			Date:      item.MatchDate,
			Opponent:  opponents[opponentID],
			IsHome:    isHome,
			Score:     FormScore{Team: teamScore, Opponent: opponentScore},
			Result:    result,
			LeagueID:  item.LeagueID,
		})
		switch result {
		case teamstats.ResultWin:
			resp.Summary.Wins++
		case teamstats.ResultLoss:
			resp.Summary.Losses++
		default:
			resp.Summary.Draws++
		}
		form = append(form, string(result)...)
	}
	resp.Summary.Played = len(resp.Matches)
	resp.Summary.FormString = string(form)

	cache.SetJSON(ctx, s.cache, key, resp, s.ttl.Form)
	return resp, nil
}

// summaries resolves every team taking part in items.
func (s *StatsService) summaries(ctx context.Context, items []fixture.Fixture) (map[int64]team.Summary, error) {
	out := make(map[int64]team.Summary, len(items)*2)
	for _, item := range items {
		for _, id := range []int64{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := out[id]; ok {
				continue
			}
			found, exists, err := s.teams.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get team %d: %w", id, err)
			}
			if !exists {
				out[id] = team.Summary{ID: id, Name: "Unknown"}
				continue
			}
			out[id] = found.Summary()
		}
	}
	return out, nil
}

func (s *StatsService) GetStandings(ctx context.Context, leagueID int64, season *int) ([]standing.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetStandings")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	targetSeason := s.season(season)
	key := cache.Key(cache.CategoryStandings, leagueID, targetSeason)
	if cached, ok := cache.GetJSON[[]standing.Entry](ctx, s.cache, key); ok {
		return cached, nil
	}

	_, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	teams, err := s.teams.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams league=%d: %w", leagueID, err)
	}

	entries := make([]standing.Entry, 0, len(teams))
	for _, item := range teams {
		stats, found, err := s.teamStats.Get(ctx, item.ID, targetSeason)
		if err != nil {
			return nil, fmt.Errorf("get team stats team=%d: %w", item.ID, err)
		}
		if !found {
			stats, err = s.CalculateTeamStats(ctx, item.ID, targetSeason)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, standing.FromStats(item, stats))
	}

	ranked := standing.Rank(entries)
	for _, entry := range ranked {
		if err := s.teamStats.UpdatePosition(ctx, entry.Team.ID, targetSeason, entry.Position); err != nil {
			s.logger.WarnContext(ctx, "persist league position failed",
				"team_id", entry.Team.ID,
				"season", targetSeason,
				"error", err,
			)
		}
	}

	cache.SetJSON(ctx, s.cache, key, ranked, s.ttl.Standings)
	return ranked, nil
}

func (s *StatsService) GetH2H(ctx context.Context, team1ID, team2ID int64) (H2HResponse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetH2H")
	defer span.End()

	if team1ID <= 0 || team2ID <= 0 {
		return H2HResponse{}, fmt.Errorf("%w: team ids must be greater than zero", ErrInvalidInput)
	}
	if team1ID == team2ID {
		return H2HResponse{}, fmt.Errorf("%w: teams must differ", ErrInvalidInput)
	}

	lo, hi, _ := h2h.Canonical(team1ID, team2ID)
	key := cache.Key(cache.CategoryH2H, lo, hi)
	if cached, ok := cache.GetJSON[h2hSnapshot](ctx, s.cache, key); ok {
		return cached.orient(team1ID), nil
	}

	snapshot, err := s.buildH2H(ctx, lo, hi)
	if err != nil {
		return H2HResponse{}, err
	}
	cache.SetJSON(ctx, s.cache, key, snapshot, s.ttl.H2H)
	return snapshot.orient(team1ID), nil
}

// RefreshH2H recomputes and stores the head-to-head record of a pair from
// its finished meetings.
func (s *StatsService) RefreshH2H(ctx context.Context, team1ID, team2ID int64) error {
	if team1ID <= 0 || team2ID <= 0 || team1ID == team2ID {
		return fmt.Errorf("%w: need two distinct team ids", ErrInvalidInput)
	}
	lo, hi, _ := h2h.Canonical(team1ID, team2ID)
	_, err := s.buildH2H(ctx, lo, hi)
	return err
}

// buildH2H derives the counts from the same meetings it lists, so the stored
// record always agrees with LastMatches.
func (s *StatsService) buildH2H(ctx context.Context, lo, hi int64) (h2hSnapshot, error) {
	lower, err := s.requireTeam(ctx, lo)
	if err != nil {
		return h2hSnapshot{}, err
	}
	higher, err := s.requireTeam(ctx, hi)
	if err != nil {
		return h2hSnapshot{}, err
	}

	meetings, err := s.fixtures.ListFinishedBetween(ctx, lo, hi, h2h.HistoryLimit)
	if err != nil {
		return h2hSnapshot{}, fmt.Errorf("list meetings %d-%d: %w", lo, hi, err)
	}
	teamstats.SortRecentFirst(meetings)
	if len(meetings) > h2h.HistoryLimit {
		meetings = meetings[:h2h.HistoryLimit]
	}

	names := func(id int64) string {
		switch id {
		case lower.ID:
			return lower.Name
		case higher.ID:
			return higher.Name
		default:
			return "Unknown"
		}
	}

	record := h2h.Compute(lo, hi, meetings, names)
	if len(meetings) > 0 {
		if record, err = s.h2h.Upsert(ctx, record); err != nil {
			return h2hSnapshot{}, fmt.Errorf("upsert h2h record %d-%d: %w", lo, hi, err)
		}
	}

	loWins, hiWins, draws := record.Oriented(lo)
	return h2hSnapshot{
		Lower:       lower.Summary(),
		Higher:      higher.Summary(),
		LowerWins:   loWins,
		HigherWins:  hiWins,
		Draws:       draws,
		LastMatches: h2h.Summaries(meetings, h2h.HistoryLimit, names),
	}, nil
}

// CompareTeams loads both teams' stats and their head-to-head concurrently.
func (s *StatsService) CompareTeams(ctx context.Context, team1ID, team2ID int64) (CompareResponse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CompareTeams")
	defer span.End()

	var out CompareResponse
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		resp, err := s.GetTeamStats(ctx, team1ID, nil)
		out.Team1 = resp
		return err
	})
	p.Go(func(ctx context.Context) error {
		resp, err := s.GetTeamStats(ctx, team2ID, nil)
		out.Team2 = resp
		return err
	})
	p.Go(func(ctx context.Context) error {
		resp, err := s.GetH2H(ctx, team1ID, team2ID)
		out.H2H = resp
		return err
	})
	if err := p.Wait(); err != nil {
		return CompareResponse{}, err
	}
	return out, nil
}

// RecalculateAllStats recomputes every team's season aggregate and drops all
// cached stats.
func (s *StatsService) RecalculateAllStats(ctx context.Context, season int) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RecalculateAllStats")
	defer span.End()

	if season <= 0 {
		season = s.currentSeason
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("list teams: %w", err)
	}

	workerPool, err := ants.NewPool(s.recalcWorkers)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		updated atomic.Int32
		failed  atomic.Int32
		workers sync.WaitGroup
	)
	for _, item := range teams {
		teamID := item.ID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			if _, err := s.CalculateTeamStats(ctx, teamID, season); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "recalculate team stats failed", "team_id", teamID, "season", season, "error", err)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return RecalcResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	s.cache.Clear(ctx, cache.StatsPattern)

	result := RecalcResult{Season: season, Updated: int(updated.Load()), Failed: int(failed.Load())}
	s.logger.InfoContext(ctx, "team stats recalculated", "season", season, "updated", result.Updated, "failed", result.Failed)
	return result, nil
}
