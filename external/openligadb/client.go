package openligadb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.openligadb.de"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
	// seasonStartMonth is the month a new season is labelled from.
	seasonStartMonth = time.August
)

// HTTPError is returned for any non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("openligadb status=%d body=%s", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
	// Now is used to derive the current season. Defaults to time.Now.
	Now func() time.Time
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	now        func() time.Time
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
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger.With("provider", "openligadb"),
		now:        now,
	}
}

// CurrentSeason returns the season year containing now. Seasons start in
// August, so January 2026 belongs to season 2025.
func CurrentSeason(now time.Time) int {
	if now.Month() >= seasonStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}

func (c *Client) CurrentSeason() int {
	return CurrentSeason(c.now())
}

// GetCurrentMatches returns the current matchday of the league.
func (c *Client) GetCurrentMatches(ctx context.Context, league string) ([]Match, error) {
	var out []Match
	if err := c.doJSON(ctx, "/getmatchdata/"+url.PathEscape(league), &out); err != nil {
		return nil, crerr.Wrapf(err, "fetch current matches league=%s", league)
	}
	return out, nil
}

// GetMatchesBySeason returns every match of the season. season <= 0 selects
// the current one.
func (c *Client) GetMatchesBySeason(ctx context.Context, league string, season int) ([]Match, error) {
	if season <= 0 {
		season = c.CurrentSeason()
	}
	var out []Match
	path := "/getmatchdata/" + url.PathEscape(league) + "/" + strconv.Itoa(season)
	if err := c.doJSON(ctx, path, &out); err != nil {
		return nil, crerr.Wrapf(err, "fetch matches league=%s season=%d", league, season)
	}
	return out, nil
}

func (c *Client) GetStandings(ctx context.Context, league string, season int) ([]TableRow, error) {
	if season <= 0 {
		season = c.CurrentSeason()
	}
	var out []TableRow
	path := "/getbltable/" + url.PathEscape(league) + "/" + strconv.Itoa(season)
	if err := c.doJSON(ctx, path, &out); err != nil {
		return nil, crerr.Wrapf(err, "fetch table league=%s season=%d", league, season)
	}
	return out, nil
}

func (c *Client) GetAvailableLeagues(ctx context.Context) ([]League, error) {
	var out []League
	if err := c.doJSON(ctx, "/getavailableleagues", &out); err != nil {
		return nil, crerr.Wrap(err, "fetch available leagues")
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path
	c.logger.InfoContext(ctx, "openligadb request", "url", fullURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "openligadb request failed", "url", fullURL, "error", err)
		return crerr.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "openligadb non-2xx response", "url", fullURL, "status", resp.StatusCode)
		body := strings.TrimSpace(string(raw))
		if len(body) > 240 {
			body = body[:240] + "..."
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode openligadb payload")
	}
	return nil
}
