package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Probe endpoints are polled constantly and would drown real traces.
var untracedPaths = map[string]bool{
	"/healthz": true,
	"/health":  true,
	"/livez":   true,
	"/readyz":  true,
}

func shouldTraceRequest(path string) bool {
	return !untracedPaths[strings.ToLower(strings.TrimSpace(path))]
}

// RequestTracing opens the server span that handler spans hang off.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "football-stats-http",
		otelhttp.WithFilter(func(r *http.Request) bool { return shouldTraceRequest(r.URL.Path) }),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
