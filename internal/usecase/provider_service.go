package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

const dateLayout = "2006-01-02"

// defaultFallbackLeague is used when the fallback is asked for matches
// without a competition.
const defaultFallbackLeague = "bl1"

// fallbackLeagues maps primary competition codes onto fallback league
// shortcuts. Codes absent here are not covered by the fallback.
var fallbackLeagues = map[string]string{
	"BL1": "bl1",
	"CL":  "cl",
	"EL":  "el",
	"WC":  "wm",
	"EC":  "em",
}

// FallbackLeague returns the fallback shortcut for a primary competition code.
func FallbackLeague(competition string) (string, bool) {
	code, ok := fallbackLeagues[strings.ToUpper(strings.TrimSpace(competition))]
	return code, ok
}

type PrimaryProvider interface {
	Configured() bool
	Matches(ctx context.Context, competition string, filter feed.MatchFilter) ([]feed.Match, error)
	Standings(ctx context.Context, competition string) ([]feed.Standing, error)
	Competitions(ctx context.Context) ([]feed.Competition, error)
}

type FallbackProvider interface {
	CurrentMatches(ctx context.Context, league string) ([]feed.Match, error)
	Standings(ctx context.Context, league string) ([]feed.Standing, error)
	Competitions(ctx context.Context) ([]feed.Competition, error)
}

type MatchQuery struct {
	Competition string
	DateFrom    string
	DateTo      string
	Status      string
}

type MatchesResult struct {
	Matches []feed.Match `json:"matches"`
	Source  string       `json:"source"`
}

type StandingsResult struct {
	Standings []feed.Standing `json:"standings"`
	Source    string          `json:"source"`
}

type CompetitionsResult struct {
	Competitions []feed.Competition `json:"competitions"`
	Source       string             `json:"source"`
}

type ProviderStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Coverage  string `json:"coverage"`
	Limit     string `json:"limit"`
}

type ProvidersStatus struct {
	Primary  ProviderStatus `json:"primary"`
	Fallback ProviderStatus `json:"fallback"`
}

type ProviderServiceConfig struct {
	Primary  PrimaryProvider
	Fallback FallbackProvider
	Cache    cache.Cache
	TTLs     cache.TTLs
	Logger   *logging.Logger
	// RequestsPerMinute is reported by GetStatus.
	RequestsPerMinute int
	Now               func() time.Time
}

// ProviderService serves match data from the primary provider and falls back
// to the secondary one. Its reads never fail: every failure degrades to an
// empty result tagged with the source that produced it.
type ProviderService struct {
	primary           PrimaryProvider
	fallback          FallbackProvider
	cache             cache.Cache
	ttl               cache.TTLs
	logger            *logging.Logger
	requestsPerMinute int
	now               func() time.Time
}

func NewProviderService(cfg ProviderServiceConfig) *ProviderService {
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
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 10
	}

	s := &ProviderService{
		primary:           cfg.Primary,
		fallback:          cfg.Fallback,
		cache:             c,
		ttl:               cfg.TTLs.WithDefaults(),
		logger:            logger,
		requestsPerMinute: rpm,
		now:               now,
	}
	if !s.primaryAvailable() {
		logger.Warn("primary provider not configured, serving fallback only")
	}
	return s
}

func (s *ProviderService) primaryAvailable() bool {
	return s.primary != nil && s.primary.Configured()
}

// ValidateMatchQuery rejects malformed dates before any upstream call.
func ValidateMatchQuery(query MatchQuery) error {
	for name, value := range map[string]string{"dateFrom": query.DateFrom, "dateTo": query.DateTo} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, name)
		}
	}
	if query.DateFrom != "" && query.DateTo != "" && query.DateTo < query.DateFrom {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}
	return nil
}

func (s *ProviderService) GetMatches(ctx context.Context, query MatchQuery) MatchesResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.GetMatches")
	defer span.End()

	query.Competition = strings.ToUpper(strings.TrimSpace(query.Competition))
	key := cache.ProviderKey("matches", query.Competition, query.DateFrom, query.DateTo, query.Status)
	if cached, ok := cache.GetJSON[MatchesResult](ctx, s.cache, key); ok {
		return cached
	}

	result := s.fetchMatches(ctx, query)
	if result.Source == feed.SourcePrimary || result.Source == feed.SourceFallback {
		cache.SetJSON(ctx, s.cache, key, result, s.ttl.ProviderMatches)
	}
	return result
}

func (s *ProviderService) fetchMatches(ctx context.Context, query MatchQuery) MatchesResult {
	if s.primaryAvailable() {
		filter := feed.MatchFilter{DateFrom: query.DateFrom, DateTo: query.DateTo, Status: query.Status}
		matches, err := s.primary.Matches(ctx, query.Competition, filter)
		if err == nil {
			return MatchesResult{Matches: nonNilMatches(matches), Source: feed.SourcePrimary}
		}
		s.logger.WarnContext(ctx, "primary provider matches failed, trying fallback",
			"competition", query.Competition,
			"error", err,
		)
	}

	league := defaultFallbackLeague
	if query.Competition != "" {
		mapped, ok := FallbackLeague(query.Competition)
		if !ok {
			s.logger.WarnContext(ctx, "competition not covered by fallback provider", "competition", query.Competition)
			return MatchesResult{Matches: []feed.Match{}, Source: feed.SourceNoCoverage}
		}
		league = mapped
	}

	matches, err := s.fallback.CurrentMatches(ctx, league)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback provider matches failed", "league", league, "error", err)
		return MatchesResult{Matches: []feed.Match{}, Source: feed.SourceError}
	}

	if query.Status != "" {
		want := fixture.ParseStatus(query.Status)
		filtered := make([]feed.Match, 0, len(matches))
		for _, item := range matches {
			if item.Status == want {
				filtered = append(filtered, item)
			}
		}
		matches = filtered
	}
	return MatchesResult{Matches: nonNilMatches(matches), Source: feed.SourceFallback}
}

func (s *ProviderService) GetStandings(ctx context.Context, competition string) StandingsResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.GetStandings")
	defer span.End()

	competition = strings.ToUpper(strings.TrimSpace(competition))
	key := cache.ProviderKey("standings", competition)
	if cached, ok := cache.GetJSON[StandingsResult](ctx, s.cache, key); ok {
		return cached
	}

	result := s.fetchStandings(ctx, competition)
	if result.Source == feed.SourcePrimary || result.Source == feed.SourceFallback {
		cache.SetJSON(ctx, s.cache, key, result, s.ttl.ProviderStandings)
	}
	return result
}

func (s *ProviderService) fetchStandings(ctx context.Context, competition string) StandingsResult {
	if s.primaryAvailable() {
		rows, err := s.primary.Standings(ctx, competition)
		if err == nil {
			return StandingsResult{Standings: nonNilStandings(rows), Source: feed.SourcePrimary}
		}
		s.logger.WarnContext(ctx, "primary provider standings failed, trying fallback",
			"competition", competition,
			"error", err,
		)
	}

	league, ok := FallbackLeague(competition)
	if !ok {
		s.logger.WarnContext(ctx, "competition not covered by fallback provider", "competition", competition)
		return StandingsResult{Standings: []feed.Standing{}, Source: feed.SourceNoCoverage}
	}

	rows, err := s.fallback.Standings(ctx, league)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback provider standings failed", "league", league, "error", err)
		return StandingsResult{Standings: []feed.Standing{}, Source: feed.SourceError}
	}
	return StandingsResult{Standings: nonNilStandings(rows), Source: feed.SourceFallback}
}

func (s *ProviderService) GetLiveMatches(ctx context.Context) MatchesResult {
	return s.GetMatches(ctx, MatchQuery{Status: "LIVE"})
}

func (s *ProviderService) GetTodayMatches(ctx context.Context, competition string) MatchesResult {
	today := s.now().UTC().Format(dateLayout)
	return s.GetMatches(ctx, MatchQuery{Competition: competition, DateFrom: today, DateTo: today})
}

// GetMatchesForDate is the sync entry point: a single day, no caching.
func (s *ProviderService) GetMatchesForDate(ctx context.Context, competition string, day time.Time) MatchesResult {
	date := day.UTC().Format(dateLayout)
	return s.fetchMatches(ctx, MatchQuery{
		Competition: strings.ToUpper(strings.TrimSpace(competition)),
		DateFrom:    date,
		DateTo:      date,
	})
}

func (s *ProviderService) GetCompetitions(ctx context.Context) CompetitionsResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.GetCompetitions")
	defer span.End()

	if s.primaryAvailable() {
		items, err := s.primary.Competitions(ctx)
		if err == nil {
			return CompetitionsResult{Competitions: nonNilCompetitions(items), Source: feed.SourcePrimary}
		}
		s.logger.WarnContext(ctx, "primary provider competitions failed, trying fallback", "error", err)
	}

	items, err := s.fallback.Competitions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback provider competitions failed", "error", err)
		return CompetitionsResult{Competitions: []feed.Competition{}, Source: feed.SourceError}
	}
	return CompetitionsResult{Competitions: nonNilCompetitions(items), Source: feed.SourceFallback}
}

func (s *ProviderService) GetStatus() ProvidersStatus {
	return ProvidersStatus{
		Primary: ProviderStatus{
			Name:      "Football-Data.org",
			Available: s.primaryAvailable(),
			Coverage:  "Top 12 leagues (PL, La Liga, Bundesliga, Serie A, CL, etc.)",
			Limit:     fmt.Sprintf("%d requests/minute", s.requestsPerMinute),
		},
		Fallback: ProviderStatus{
			Name:      "OpenLigaDB",
			Available: true,
			Coverage:  "Bundesliga, CL, EL, World Cup, Euro",
			Limit:     "Unlimited",
		},
	}
}

func nonNilMatches(items []feed.Match) []feed.Match {
	if items == nil {
		return []feed.Match{}
	}
	return items
}

func nonNilStandings(items []feed.Standing) []feed.Standing {
	if items == nil {
		return []feed.Standing{}
	}
	return items
}

func nonNilCompetitions(items []feed.Competition) []feed.Competition {
	if items == nil {
		return []feed.Competition{}
	}
	return items
}
