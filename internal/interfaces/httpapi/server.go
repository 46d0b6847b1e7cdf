package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-stats/internal/platform/id"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerCatalogRoutes(mux, handler)
	registerStatsRoutes(mux, handler)
	registerFixtureRoutes(mux, handler)
	registerProviderRoutes(mux, handler)
	registerInternalRoutes(mux, handler)

	return RequestTracing(
		RequestID(id.NewRandomGenerator("req_"),
			RequestLogging(logger,
				CORS(corsAllowedOrigins,
					recoverPanic(logger, mux)))))
}
