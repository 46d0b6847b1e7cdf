// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-stats/internal/platform/cache"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	SwaggerEnabled     bool
	CORSAllowedOrigins []string

	DBURL                   string
	DBDisablePreparedBinary bool
	DBBootstrapSeed         bool
	RedisURL                string
	RedisDialTimeout        time.Duration
	CacheTTLs               cache.TTLs

	FootballDataBaseURL        string
	FootballDataAPIKey         string
	FootballDataTimeout        time.Duration
	FootballDataRateLimit      int
	FootballDataAcquireTimeout time.Duration
	FootballDataCircuit        resilience.BreakerConfig
	OpenLigaDBBaseURL          string
	OpenLigaDBTimeout          time.Duration

	CurrentSeason      int
	StatsRecalcWorkers int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the environment. All invalid settings are reported in one
// joined error.
func Load() (Config, error) {
	var env envReader

	appEnv := strings.ToLower(env.str("APP_ENV", EnvDev))
	switch appEnv {
	case EnvDev, EnvStage, EnvProd:
	default:
		env.fail("invalid APP_ENV %q: want %s, %s or %s", appEnv, EnvDev, EnvStage, EnvProd)
		appEnv = EnvDev
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    env.str("APP_SERVICE_NAME", "football-stats-api"),
		ServiceVersion: env.str("APP_SERVICE_VERSION", "dev"),
		LogLevel:       logging.ParseLevel(env.str("LOG_LEVEL", "info")),

		HTTPAddr:           env.str("HTTP_ADDR", ":8080"),
		ReadTimeout:        env.duration("APP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       env.duration("APP_WRITE_TIMEOUT", 30*time.Second),
		SwaggerEnabled:     env.boolean("SWAGGER_ENABLED", appEnv != EnvProd),
		CORSAllowedOrigins: env.list("CORS_ALLOWED_ORIGINS", "*"),

		DBURL:                   env.str("DB_URL", ""),
		DBDisablePreparedBinary: env.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		DBBootstrapSeed:         env.boolean("DB_BOOTSTRAP_SEED", appEnv == EnvDev),
		RedisURL:                env.str("REDIS_URL", ""),
		RedisDialTimeout:        env.positive("REDIS_DIAL_TIMEOUT", 2*time.Second),
		CacheTTLs:               loadCacheTTLs(&env),

		FootballDataBaseURL:        env.str("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4"),
		FootballDataAPIKey:         env.str("FOOTBALL_DATA_API_KEY", ""),
		FootballDataTimeout:        env.positive("FOOTBALL_DATA_TIMEOUT", 10*time.Second),
		FootballDataRateLimit:      env.integer("FOOTBALL_DATA_RATE_LIMIT", 10, 1),
		FootballDataAcquireTimeout: env.nonNegative("FOOTBALL_DATA_ACQUIRE_TIMEOUT", 0),
		FootballDataCircuit:        loadBreaker(&env, "FOOTBALL_DATA_CIRCUIT"),
		OpenLigaDBBaseURL:          env.str("OPENLIGADB_BASE_URL", "https://api.openligadb.de"),
		OpenLigaDBTimeout:          env.positive("OPENLIGADB_TIMEOUT", 10*time.Second),

		CurrentSeason:      env.integer("CURRENT_SEASON", 2025, 1900),
		StatsRecalcWorkers: env.integer("STATS_RECALC_WORKERS", 1, 1),

		PprofEnabled:               env.boolean("PPROF_ENABLED", false),
		PprofAddr:                  env.str("PPROF_ADDR", ":6060"),
		UptraceEnabled:             env.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:                 env.str("UPTRACE_DSN", uptraceDSNFromHeaders(env.str("OTEL_EXPORTER_OTLP_HEADERS", ""))),
		UptraceLogsEnabled:         env.boolean("UPTRACE_LOGS_ENABLED", true),
		PyroscopeEnabled:           env.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     env.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:         env.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     env.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: env.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        env.positive("PYROSCOPE_UPLOAD_RATE", 15*time.Second),
	}
	cfg.PyroscopeAppName = env.str("PYROSCOPE_APP_NAME", cfg.ServiceName)

	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		env.fail("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		env.fail("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		env.fail("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadBreaker reads <prefix>_ENABLED, _FAILURE_COUNT, _COOLDOWN and _PROBES.
func loadBreaker(env *envReader, prefix string) resilience.BreakerConfig {
	def := resilience.DefaultBreakerConfig()
	return resilience.BreakerConfig{
		Enabled:          env.boolean(prefix+"_ENABLED", def.Enabled),
		FailureThreshold: env.integer(prefix+"_FAILURE_COUNT", def.FailureThreshold, 1),
		Cooldown:         env.positive(prefix+"_COOLDOWN", def.Cooldown),
		Probes:           env.integer(prefix+"_PROBES", def.Probes, 1),
	}
}

// loadCacheTTLs applies CACHE_TTL_<KIND> overrides to cache.DefaultTTLs.
func loadCacheTTLs(env *envReader) cache.TTLs {
	ttls := cache.DefaultTTLs()
	for key, ttl := range map[string]*time.Duration{
		"CACHE_TTL_LIVE":               &ttls.Live,
		"CACHE_TTL_UPCOMING":           &ttls.Upcoming,
		"CACHE_TTL_FIXTURE":            &ttls.Fixture,
		"CACHE_TTL_TEAM_STATS":         &ttls.TeamStats,
		"CACHE_TTL_FORM":               &ttls.Form,
		"CACHE_TTL_STANDINGS":          &ttls.Standings,
		"CACHE_TTL_H2H":                &ttls.H2H,
		"CACHE_TTL_PROVIDER_MATCHES":   &ttls.ProviderMatches,
		"CACHE_TTL_PROVIDER_STANDINGS": &ttls.ProviderStandings,
	} {
		*ttl = env.positive(key, *ttl)
	}
	return ttls
}
