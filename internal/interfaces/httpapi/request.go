package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-stats/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type teamStatsRequest struct {
	TeamID int64 `validate:"gt=0"`
	Season *int  `validate:"omitempty,gte=1900,lte=2100"`
}

type teamFormRequest struct {
	TeamID int64 `validate:"gt=0"`
	Last   int   `validate:"gte=1,lte=20"`
}

type standingsRequest struct {
	LeagueID int64 `validate:"gt=0"`
	Season   *int  `validate:"omitempty,gte=1900,lte=2100"`
}

type teamPairRequest struct {
	Team1ID int64 `validate:"gt=0"`
	Team2ID int64 `validate:"gt=0,nefield=Team1ID"`
}

type recalculateRequest struct {
	Season *int `validate:"omitempty,gte=1900,lte=2100"`
}

type syncFixturesRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	League string `json:"league" validate:"omitempty,alphanum,max=10"`
}

type upcomingFixturesRequest struct {
	LeagueID int64 `validate:"gte=0"`
	TeamID   int64 `validate:"gte=0"`
	Limit    int   `validate:"gte=0,lte=100"`
	Offset   int   `validate:"gte=0"`
}

type providerMatchesRequest struct {
	Competition string `validate:"omitempty,alphanum,max=10"`
	DateFrom    string `validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `validate:"omitempty,datetime=2006-01-02"`
	Status      string `validate:"omitempty,oneof=SCHEDULED TIMED IN_PLAY PAUSED LIVE FINISHED POSTPONED SUSPENDED CANCELLED"`
}

type competitionRequest struct {
	Competition string `validate:"required,alphanum,max=10"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// querySeason returns nil when the season parameter is absent.
func querySeason(r *http.Request) (*int, error) {
	if strings.TrimSpace(r.URL.Query().Get("season")) == "" {
		return nil, nil
	}
	season, err := queryInt(r, "season", 0)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// decodeJSONBody decodes an optional JSON body. An empty body leaves target
// untouched.
func decodeJSONBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
