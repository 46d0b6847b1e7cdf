package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/football-stats/internal/platform/id"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID reuses a well-formed X-Request-ID from the caller or assigns a
// new one, and echoes it on the response.
func RequestID(gen id.Generator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if !id.Valid(requestID) {
			requestID = gen.NewID()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}
