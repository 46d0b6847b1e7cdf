package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-stats/internal/usecase"
)

func (h *Handler) SyncFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncFixtures")
	defer span.End()

	var req syncFixturesRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.Date = strings.TrimSpace(req.Date)
	req.League = strings.TrimSpace(req.League)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.fixtureService.SyncFixtures(ctx, usecase.SyncInput{Date: req.Date, League: req.League})
	if err != nil {
		h.logger.WarnContext(ctx, "sync fixtures failed", "date", req.Date, "league", req.League, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingFixtures")
	defer span.End()

	var (
		req upcomingFixturesRequest
		err error
	)
	if req.LeagueID, err = queryInt64(r, "leagueId"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.TeamID, err = queryInt64(r, "teamId"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.fixtureService.ListUpcoming(ctx, usecase.UpcomingQuery{
		LeagueID: req.LeagueID,
		TeamID:   req.TeamID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming fixtures failed", "league_id", req.LeagueID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLiveFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveFixtures")
	defer span.End()

	items, err := h.fixtureService.ListLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list live fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}
