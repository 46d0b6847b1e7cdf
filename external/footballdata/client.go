package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/platform/ratelimit"
	"github.com/riskibarqy/football-stats/internal/platform/resilience"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

const (
	defaultBaseURL           = "https://api.football-data.org/v4"
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerMinute = 10
	authHeader               = "X-Auth-Token"
	maxBodyBytes             = 4 << 20
)

var errTransient = crerr.New("football-data transient failure")

// HTTPError is returned for any non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("football-data status=%d body=%s", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerMinute int
	// AcquireTimeout bounds the wait for a rate limit slot. Zero waits as
	// long as the request context allows.
	AcquireTimeout time.Duration
	Limiter        *ratelimit.Limiter
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type MatchQuery struct {
	DateFrom     string
	DateTo       string
	Status       string
	Season       int
	Matchday     int
	Competitions string
}

func (q MatchQuery) values() url.Values {
	values := url.Values{}
	if q.DateFrom != "" {
		values.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		values.Set("dateTo", q.DateTo)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Season > 0 {
		values.Set("season", strconv.Itoa(q.Season))
	}
	if q.Matchday > 0 {
		values.Set("matchday", strconv.Itoa(q.Matchday))
	}
	if q.Competitions != "" {
		values.Set("competitions", q.Competitions)
	}
	return values
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	limiter        *ratelimit.Limiter
	acquireTimeout time.Duration
	sharedTimeout  time.Duration
	logger         *logging.Logger
	breaker        *resilience.Breaker
	flight         singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limiter := cfg.Limiter
	if limiter == nil {
		perMinute := cfg.RequestsPerMinute
		if perMinute <= 0 {
			perMinute = defaultRequestsPerMinute
		}
		limiter = ratelimit.NewPerMinute(perMinute)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		limiter:        limiter,
		acquireTimeout: cfg.AcquireTimeout,
		sharedTimeout:  sharedCallTimeout(cfg.AcquireTimeout, timeout),
		logger:         logger.With("provider", "football-data"),
		breaker:        resilience.NewBreaker("football-data", cfg.CircuitBreaker, logger),
	}
}

// Configured reports whether an API token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

func (c *Client) GetCompetitionMatches(ctx context.Context, code string, query MatchQuery) (MatchList, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return MatchList{}, fmt.Errorf("competition code is required")
	}
	var out MatchList
	if err := c.doJSON(ctx, "/competitions/"+url.PathEscape(code)+"/matches", query.values(), &out); err != nil {
		return MatchList{}, crerr.Wrapf(err, "fetch matches competition=%s", code)
	}
	return out, nil
}

func (c *Client) GetMatches(ctx context.Context, query MatchQuery) (MatchList, error) {
	var out MatchList
	if err := c.doJSON(ctx, "/matches", query.values(), &out); err != nil {
		return MatchList{}, crerr.Wrap(err, "fetch matches")
	}
	return out, nil
}

// GetStandings fetches the table for code. season <= 0 selects the current one.
func (c *Client) GetStandings(ctx context.Context, code string, season int) (StandingsResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return StandingsResponse{}, fmt.Errorf("competition code is required")
	}
	values := url.Values{}
	if season > 0 {
		values.Set("season", strconv.Itoa(season))
	}
	var out StandingsResponse
	if err := c.doJSON(ctx, "/competitions/"+url.PathEscape(code)+"/standings", values, &out); err != nil {
		return StandingsResponse{}, crerr.Wrapf(err, "fetch standings competition=%s", code)
	}
	return out, nil
}

func (c *Client) GetCompetitions(ctx context.Context) (CompetitionList, error) {
	var out CompetitionList
	if err := c.doJSON(ctx, "/competitions", nil, &out); err != nil {
		return CompetitionList{}, crerr.Wrap(err, "fetch competitions")
	}
	return out, nil
}

func (c *Client) GetTeam(ctx context.Context, teamID int64) (Team, error) {
	if teamID <= 0 {
		return Team{}, fmt.Errorf("team id must be greater than zero")
	}
	var out Team
	if err := c.doJSON(ctx, "/teams/"+strconv.FormatInt(teamID, 10), nil, &out); err != nil {
		return Team{}, crerr.Wrapf(err, "fetch team id=%d", teamID)
	}
	return out, nil
}

// GetHeadToHead returns earlier meetings of the two teams playing matchID.
func (c *Client) GetHeadToHead(ctx context.Context, matchID int64, limit int) (HeadToHead, error) {
	if matchID <= 0 {
		return HeadToHead{}, fmt.Errorf("match id must be greater than zero")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var out HeadToHead
	if err := c.doJSON(ctx, "/matches/"+strconv.FormatInt(matchID, 10)+"/head2head", values, &out); err != nil {
		return HeadToHead{}, crerr.Wrapf(err, "fetch head2head match=%d", matchID)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	release, err := c.breaker.Acquire()
	if err != nil {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: football-data is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared request outlives any single caller; each caller stops
	// waiting on its own ctx.
	results := c.flight.DoChan(fullURL, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		return c.executeRequest(shared, fullURL)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		release(false)
		return ctx.Err()
	case res = <-results:
	}
	release(crerr.Is(res.Err, errTransient))
	if res.Err != nil {
		return res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", res.Val)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode football-data payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Acquire(ctx, c.acquireTimeout); err != nil {
		c.logger.WarnContext(ctx, "football-data rate limit slot unavailable",
			"limit", c.limiter.PerMinute(),
			"wait", c.limiter.Delay().String(),
			"error", err,
		)
		return nil, crerr.Wrap(err, "acquire rate limit slot")
	}
	c.logger.InfoContext(ctx, "football-data request",
		"request", fmt.Sprintf("#%d/%d per minute", c.limiter.Used(), c.limiter.PerMinute()),
		"url", fullURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set(authHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		sendErr := fmt.Errorf("%w: send request: %s", errTransient, redact(err.Error(), c.token))
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", sendErr)
		return nil, sendErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: abbreviateBody(redact(string(raw), c.token))}
		c.logger.WarnContext(ctx, "football-data non-2xx response", "url", fullURL, "status", resp.StatusCode)
		if isTransientStatus(resp.StatusCode) {
			return nil, crerr.Mark(httpErr, errTransient)
		}
		return nil, httpErr
	}

	return raw, nil
}

// sharedCallTimeout bounds one collapsed request: the longest rate limit
// wait (one minute when unbounded) plus the HTTP timeout.
func sharedCallTimeout(acquireTimeout, httpTimeout time.Duration) time.Duration {
	if acquireTimeout <= 0 {
		acquireTimeout = time.Minute
	}
	return acquireTimeout + httpTimeout
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// AsHTTPError extracts the upstream status from err when present.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

func redact(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
}

func abbreviateBody(text string) string {
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
