package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/football-stats/external/footballdata"
	"github.com/riskibarqy/football-stats/external/openligadb"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/h2h"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/teamstats"
	cacherepo "github.com/riskibarqy/football-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

const catalogCacheTTL = 10 * time.Minute

type repositories struct {
	leagues   league.Repository
	teams     team.Repository
	fixtures  fixture.Repository
	teamStats teamstats.Repository
	h2h       h2h.Repository
}

// NewHTTPServer wires storage, providers and services behind the HTTP router.
// The returned cleanup releases the database and cache connections.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close resource failed", "error", err)
			}
		}
	}

	repos, closeDB, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if closeDB != nil {
		closers = append(closers, closeDB)
	}

	responseCache := cache.New(ctx, cache.Config{
		RedisURL:    cfg.RedisURL,
		DialTimeout: cfg.RedisDialTimeout,
		Logger:      logger,
	})
	if redisCache, ok := responseCache.(*cache.RedisCache); ok {
		closers = append(closers, redisCache.Close)
	}

	primary := footballdata.NewProvider(footballdata.NewClient(footballdata.ClientConfig{
		HTTPClient:        tracedHTTPClient(cfg.FootballDataTimeout),
		BaseURL:           cfg.FootballDataBaseURL,
		Token:             cfg.FootballDataAPIKey,
		Timeout:           cfg.FootballDataTimeout,
		RequestsPerMinute: cfg.FootballDataRateLimit,
		AcquireTimeout:    cfg.FootballDataAcquireTimeout,
		Logger:            logger,
		CircuitBreaker:    cfg.FootballDataCircuit,
	}))
	fallback := openligadb.NewProvider(openligadb.NewClient(openligadb.ClientConfig{
		HTTPClient: tracedHTTPClient(cfg.OpenLigaDBTimeout),
		BaseURL:    cfg.OpenLigaDBBaseURL,
		Timeout:    cfg.OpenLigaDBTimeout,
		Logger:     logger,
	}))

	providerSvc := usecase.NewProviderService(usecase.ProviderServiceConfig{
		Primary:           primary,
		Fallback:          fallback,
		Cache:             responseCache,
		TTLs:              cfg.CacheTTLs,
		Logger:            logger,
		RequestsPerMinute: cfg.FootballDataRateLimit,
	})
	statsSvc := usecase.NewStatsService(usecase.StatsServiceConfig{
		Teams:         repos.teams,
		Leagues:       repos.leagues,
		Fixtures:      repos.fixtures,
		TeamStats:     repos.teamStats,
		H2H:           repos.h2h,
		Cache:         responseCache,
		TTLs:          cfg.CacheTTLs,
		Logger:        logger,
		CurrentSeason: cfg.CurrentSeason,
		RecalcWorkers: cfg.StatsRecalcWorkers,
	})
	fixtureSvc := usecase.NewFixtureService(usecase.FixtureServiceConfig{
		Leagues:  repos.leagues,
		Teams:    repos.teams,
		Fixtures: repos.fixtures,
		Feed:     providerSvc,
		Stats:    statsSvc,
		Cache:    responseCache,
		TTLs:     cfg.CacheTTLs,
		Logger:   logger,
	})
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams)

	handler := httpapi.NewHandler(statsSvc, fixtureSvc, providerSvc, leagueSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL not set, serving the in-memory dataset")
		return repositories{
			leagues:   memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			fixtures:  memory.NewFixtureRepository(memory.SeedFixtures()),
			teamStats: memory.NewTeamStatsRepository(),
			h2h:       memory.NewH2HRepository(),
		}, nil, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("database seed applied")
	}

	catalogStore := cache.NewStore(catalogCacheTTL)
	return repositories{
		leagues:   cacherepo.NewLeagueRepository(postgres.NewLeagueRepository(db), catalogStore),
		teams:     cacherepo.NewTeamRepository(postgres.NewTeamRepository(db), catalogStore),
		fixtures:  postgres.NewFixtureRepository(db),
		teamStats: postgres.NewTeamStatsRepository(db),
		h2h:       postgres.NewH2HRepository(db),
	}, db.Close, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func tracedHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
