package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/h2h"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

const (
	defaultUpcomingLimit = 20
	maxUpcomingLimit     = 100
)

// MatchFeed supplies the provider matches of a single day.
type MatchFeed interface {
	GetMatchesForDate(ctx context.Context, competition string, day time.Time) MatchesResult
}

// StatsRefresher recomputes derived stats for rows a sync touched.
type StatsRefresher interface {
	CalculateTeamStats(ctx context.Context, teamID int64, season int) (teamstats.TeamStats, error)
	RefreshH2H(ctx context.Context, team1ID, team2ID int64) error
}

type SyncInput struct {
	// Date is YYYY-MM-DD; empty means today (UTC).
	Date   string
	League string
}

type SyncResult struct {
	Date    string `json:"date"`
	Synced  int    `json:"synced"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
	Source  string `json:"source"`

	StatsRefreshed int `json:"statsRefreshed"`
}

type UpcomingQuery struct {
	LeagueID int64
	TeamID   int64
	Limit    int
	Offset   int
}

type LeagueRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FixtureView is a fixture with its teams and league resolved.
type FixtureView struct {
	ID         int64          `json:"id"`
	ExternalID string         `json:"externalId"`
	League     LeagueRef      `json:"league"`
	Season     int            `json:"season"`
	HomeTeam   team.Summary   `json:"homeTeam"`
	AwayTeam   team.Summary   `json:"awayTeam"`
	MatchDate  time.Time      `json:"matchDate"`
	Status     fixture.Status `json:"status"`
	HomeScore  *int           `json:"homeScore"`
	AwayScore  *int           `json:"awayScore"`
	Minute     *int           `json:"minute,omitempty"`
	Matchday   int            `json:"matchday,omitempty"`
	Venue      string         `json:"venue,omitempty"`
	Source     string         `json:"source,omitempty"`
}

type FixtureServiceConfig struct {
	Leagues  league.Repository
	Teams    team.Repository
	Fixtures fixture.Repository
	Feed     MatchFeed
	Stats    StatsRefresher
	Cache    cache.Cache
	TTLs     cache.TTLs
	Logger   *logging.Logger
	Now      func() time.Time
}

type FixtureService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	feed        MatchFeed
	stats       StatsRefresher
	cache       cache.Cache
	ttl         cache.TTLs
	logger      *logging.Logger
	now         func() time.Time
}

func NewFixtureService(cfg FixtureServiceConfig) *FixtureService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NullCache{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FixtureService{
		leagueRepo:  cfg.Leagues,
		teamRepo:    cfg.Teams,
		fixtureRepo: cfg.Fixtures,
		feed:        cfg.Feed,
		stats:       cfg.Stats,
		cache:       c,
		ttl:         cfg.TTLs.WithDefaults(),
		logger:      logger,
		now:         now,
	}
}

// SyncFixtures pulls one day of provider matches into the store. Rows that
// fail to persist are logged and skipped. Stats of every team and pair the
// sync touched are recomputed before the caches are cleared.
func (s *FixtureService) SyncFixtures(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SyncFixtures")
	defer span.End()

	day := s.now().UTC()
	if date := strings.TrimSpace(input.Date); date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return SyncResult{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		day = parsed
	}

	feedResult := s.feed.GetMatchesForDate(ctx, input.League, day)
	result := SyncResult{Date: day.Format(dateLayout), Source: feedResult.Source}

	syncer := newFixtureSyncer(s)
	touched := newTouchedSet()
	for _, match := range feedResult.Matches {
		created, err := syncer.apply(ctx, match, touched)
		if err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "sync fixture skipped",
				"external_id", match.ID,
				"error", fmt.Errorf("%w: %w", ErrPersistence, err),
			)
			continue
		}
		if created {
			result.Synced++
		} else {
			result.Updated++
		}
	}

	result.StatsRefreshed = s.refreshStats(ctx, touched)

	s.cache.Clear(ctx, cache.FixturesPattern)
	s.cache.Clear(ctx, cache.StatsPattern)

	s.logger.InfoContext(ctx, "fixtures synced",
		"date", result.Date,
		"source", result.Source,
		"synced", result.Synced,
		"updated", result.Updated,
		"failed", result.Failed,
		"stats_refreshed", result.StatsRefreshed,
	)
	return result, nil
}

// refreshStats returns how many team stat rows were recomputed. Failures are
// logged; the next read or recalculation picks them up.
func (s *FixtureService) refreshStats(ctx context.Context, touched *touchedSet) int {
	if s.stats == nil {
		return 0
	}

	refreshed := 0
	for _, key := range touched.teamSeasons() {
		if _, err := s.stats.CalculateTeamStats(ctx, key.teamID, key.season); err != nil {
			s.logger.WarnContext(ctx, "team stats refresh failed",
				"team_id", key.teamID,
				"season", key.season,
				"error", err,
			)
			continue
		}
		refreshed++
	}
	for _, pair := range touched.meetings() {
		if err := s.stats.RefreshH2H(ctx, pair[0], pair[1]); err != nil {
			s.logger.WarnContext(ctx, "h2h refresh failed",
				"team1_id", pair[0],
				"team2_id", pair[1],
				"error", err,
			)
		}
	}
	return refreshed
}

type teamSeason struct {
	teamID int64
	season int
}

// touchedSet collects the teams and finished pairings written by one sync.
type touchedSet struct {
	teams map[teamSeason]struct{}
	pairs map[[2]int64]struct{}
}

func newTouchedSet() *touchedSet {
	return &touchedSet{
		teams: make(map[teamSeason]struct{}),
		pairs: make(map[[2]int64]struct{}),
	}
}

func (t *touchedSet) add(item fixture.Fixture) {
	t.teams[teamSeason{teamID: item.HomeTeamID, season: item.Season}] = struct{}{}
	t.teams[teamSeason{teamID: item.AwayTeamID, season: item.Season}] = struct{}{}
	if item.Status == fixture.StatusFinished {
		lo, hi, _ := h2h.Canonical(item.HomeTeamID, item.AwayTeamID)
		t.pairs[[2]int64{lo, hi}] = struct{}{}
	}
}

func (t *touchedSet) teamSeasons() []teamSeason {
	out := make([]teamSeason, 0, len(t.teams))
	for key := range t.teams {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].season != out[j].season {
			return out[i].season < out[j].season
		}
		return out[i].teamID < out[j].teamID
	})
	return out
}

func (t *touchedSet) meetings() [][2]int64 {
	out := make([][2]int64, 0, len(t.pairs))
	for pair := range t.pairs {
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// fixtureSyncer remembers leagues and teams already upserted during one sync.
type fixtureSyncer struct {
	service *FixtureService
	leagues map[string]league.League
	teams   map[string]team.Team
}

func newFixtureSyncer(service *FixtureService) *fixtureSyncer {
	return &fixtureSyncer{
		service: service,
		leagues: make(map[string]league.League),
		teams:   make(map[string]team.Team),
	}
}

func (f *fixtureSyncer) apply(ctx context.Context, match feed.Match, touched *touchedSet) (bool, error) {
	if !feed.KnownID(match.HomeTeam.ID) || !feed.KnownID(match.AwayTeam.ID) {
		return false, fmt.Errorf("match %s has no provider team id", match.ID)
	}

	season := match.Competition.Season
	if season <= 0 {
		season = match.UTCDate.UTC().Year()
	}

	lg, err := f.ensureLeague(ctx, match.Competition, season)
	if err != nil {
		return false, err
	}
	home, err := f.ensureTeam(ctx, match.HomeTeam, lg)
	if err != nil {
		return false, err
	}
	away, err := f.ensureTeam(ctx, match.AwayTeam, lg)
	if err != nil {
		return false, err
	}

	item := fixture.Fixture{
		ExternalID: match.ID,
		LeagueID:   lg.ID,
		Season:     season,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		MatchDate:  match.UTCDate.UTC(),
		Status:     match.Status,
		HomeScore:  match.Score.Home,
		AwayScore:  match.Score.Away,
		Minute:     match.Minute,
		Matchday:   match.Matchday,
		Venue:      match.Venue,
		Source:     match.Source,
	}.Normalize()

	saved, created, err := f.service.fixtureRepo.UpsertByExternalID(ctx, item)
	if err != nil {
		return false, fmt.Errorf("upsert fixture %s: %w", match.ID, err)
	}
	touched.add(saved)
	return created, nil
}

func (f *fixtureSyncer) ensureLeague(ctx context.Context, ref feed.CompetitionRef, season int) (league.League, error) {
	key := fmt.Sprintf("%s@%d", ref.ID, season)
	if item, ok := f.leagues[key]; ok {
		return item, nil
	}

	item, err := f.service.leagueRepo.UpsertByExternalID(ctx, league.League{
		ExternalID: ref.ID,
		Name:       feed.NameOrUnknown(ref.Name),
		Country:    feed.StringValue(ref.Country),
		Season:     season,
		CrestURL:   feed.StringValue(ref.Emblem),
	})
	if err != nil {
		return league.League{}, fmt.Errorf("upsert league %s: %w", ref.ID, err)
	}
	f.leagues[key] = item
	return item, nil
}

func (f *fixtureSyncer) ensureTeam(ctx context.Context, ref feed.TeamRef, lg league.League) (team.Team, error) {
	if item, ok := f.teams[ref.ID]; ok {
		return item, nil
	}

	item, err := f.service.teamRepo.UpsertByExternalID(ctx, team.Team{
		ExternalID: ref.ID,
		Name:       feed.NameOrUnknown(ref.Name),
		ShortCode:  feed.StringValue(ref.ShortName),
		CrestURL:   feed.StringValue(ref.Crest),
		LeagueID:   lg.ID,
		Country:    lg.Country,
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("upsert team %s: %w", ref.ID, err)
	}
	f.teams[ref.ID] = item
	return item, nil
}

func (s *FixtureService) ListUpcoming(ctx context.Context, query UpcomingQuery) ([]FixtureView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListUpcoming")
	defer span.End()

	if query.Limit == 0 {
		query.Limit = defaultUpcomingLimit
	}
	if query.Limit < 0 || query.Limit > maxUpcomingLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxUpcomingLimit)
	}
	if query.Offset < 0 || query.LeagueID < 0 || query.TeamID < 0 {
		return nil, fmt.Errorf("%w: offset and ids must not be negative", ErrInvalidInput)
	}

	key := cache.FixtureKey("upcoming", query.LeagueID, query.TeamID, query.Limit, query.Offset)
	return cache.Remember(ctx, s.cache, key, s.ttl.Upcoming, func(ctx context.Context) ([]FixtureView, error) {
		items, err := s.fixtureRepo.ListUpcoming(ctx, fixture.UpcomingFilter{
			LeagueID: query.LeagueID,
			TeamID:   query.TeamID,
			From:     s.now().UTC(),
			Limit:    query.Limit,
			Offset:   query.Offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list upcoming fixtures: %w", err)
		}
		return s.views(ctx, items)
	})
}

func (s *FixtureService) ListLive(ctx context.Context) ([]FixtureView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListLive")
	defer span.End()

	return cache.Remember(ctx, s.cache, cache.FixtureKey("live"), s.ttl.Live, func(ctx context.Context) ([]FixtureView, error) {
		items, err := s.fixtureRepo.ListLive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list live fixtures: %w", err)
		}
		return s.views(ctx, items)
	})
}

func (s *FixtureService) GetByID(ctx context.Context, id int64) (FixtureView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetByID")
	defer span.End()

	if id <= 0 {
		return FixtureView{}, fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}

	return cache.Remember(ctx, s.cache, cache.FixtureKey("id", id), s.ttl.Fixture, func(ctx context.Context) (FixtureView, error) {
		item, exists, err := s.fixtureRepo.GetByID(ctx, id)
		if err != nil {
			return FixtureView{}, fmt.Errorf("get fixture: %w", err)
		}
		if !exists {
			return FixtureView{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, id)
		}
		views, err := s.views(ctx, []fixture.Fixture{item})
		if err != nil {
			return FixtureView{}, err
		}
		return views[0], nil
	})
}

func (s *FixtureService) views(ctx context.Context, items []fixture.Fixture) ([]FixtureView, error) {
	teams := make(map[int64]team.Summary)
	leagues := make(map[int64]LeagueRef)

	teamSummary := func(id int64) (team.Summary, error) {
		if cached, ok := teams[id]; ok {
			return cached, nil
		}
		item, exists, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			return team.Summary{}, fmt.Errorf("get team %d: %w", id, err)
		}
		summary := team.Summary{ID: id, Name: feed.UnknownName}
		if exists {
			summary = item.Summary()
		}
		teams[id] = summary
		return summary, nil
	}
	leagueRef := func(id int64) (LeagueRef, error) {
		if cached, ok := leagues[id]; ok {
			return cached, nil
		}
		item, exists, err := s.leagueRepo.GetByID(ctx, id)
		if err != nil {
			return LeagueRef{}, fmt.Errorf("get league %d: %w", id, err)
		}
		ref := LeagueRef{ID: id, Name: feed.UnknownName}
		if exists {
			ref.Name = item.Name
		}
		leagues[id] = ref
		return ref, nil
	}

	out := make([]FixtureView, 0, len(items))
	for _, item := range items {
		home, err := teamSummary(item.HomeTeamID)
		if err != nil {
			return nil, err
		}
		away, err := teamSummary(item.AwayTeamID)
		if err != nil {
			return nil, err
		}
		lg, err := leagueRef(item.LeagueID)
		if err != nil {
			return nil, err
		}

		out = append(out, FixtureView{
			ID:         item.ID,
			ExternalID: item.ExternalID,
			League:     lg,
			Season:     item.Season,
			HomeTeam:   home,
			AwayTeam:   away,
			MatchDate:  item.MatchDate,
			Status:     item.Status,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			Minute:     item.Minute,
			Matchday:   item.Matchday,
			Venue:      item.Venue,
			Source:     item.Source,
		})
	}
	return out, nil
}
