package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/READYZ", " /healthz "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/fixtures/live", "/v1/leagues/2002/standings", "/", "/docs"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestCORS(t *testing.T) {
	cases := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantAllow  string
		wantStatus int
	}{
		{"configured origin", []string{"https://stats.example.com"}, http.MethodGet, "https://stats.example.com", "https://stats.example.com", http.StatusOK},
		{"unconfigured origin", []string{"https://stats.example.com"}, http.MethodGet, "https://evil.example.com", "", http.StatusOK},
		{"wildcard preflight", []string{"*"}, http.MethodOptions, "https://stats.example.com", "*", http.StatusNoContent},
		{"same origin", []string{"https://stats.example.com"}, http.MethodGet, "", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/teams/5/stats", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantAllow != "" && tc.wantAllow != "*" {
				assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			}
		})
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(logging.LevelDebug)
	logger := logging.FromZap(zap.New(core))

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/fixtures/404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/fixtures/live", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/fixtures/404", nil))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, logging.LevelInfo, entries[0].Level)
	assert.EqualValues(t, 200, entries[0].ContextMap()["http_status"])
	assert.EqualValues(t, 11, entries[0].ContextMap()["response_bytes"])
	assert.Equal(t, logging.LevelWarn, entries[1].Level)
	assert.EqualValues(t, 404, entries[1].ContextMap()["http_status"])
}

func TestRecoverPanic_Returns500(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil standings row")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/1/standings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"INTERNAL"`)
}
