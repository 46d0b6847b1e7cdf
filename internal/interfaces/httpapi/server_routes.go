package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/form", handler.GetTeamForm)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/h2h/{team1ID}/{team2ID}", handler.GetH2H)
	mux.HandleFunc("GET /v1/compare/{team1ID}/{team2ID}", handler.CompareTeams)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/upcoming", handler.ListUpcomingFixtures)
	mux.HandleFunc("GET /v1/fixtures/live", handler.ListLiveFixtures)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
}

func registerProviderRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/provider/matches", handler.ListProviderMatches)
	mux.HandleFunc("GET /v1/provider/matches/live", handler.ListProviderLiveMatches)
	mux.HandleFunc("GET /v1/provider/standings/{competition}", handler.GetProviderStandings)
	mux.HandleFunc("GET /v1/provider/competitions", handler.ListProviderCompetitions)
	mux.HandleFunc("GET /v1/provider/status", handler.GetProviderStatus)
}

// Internal routes trigger writes. Access control belongs to the gateway in
// front of the service.
func registerInternalRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/internal/sync/fixtures", handler.SyncFixtures)
	mux.HandleFunc("POST /v1/internal/stats/recalculate", handler.RecalculateStats)
}
