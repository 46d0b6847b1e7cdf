package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-stats/internal/usecase"
)

// Provider reads never fail once the request is valid: upstream trouble shows
// up as an empty payload tagged with its source.

func (h *Handler) ListProviderMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderMatches")
	defer span.End()

	query := r.URL.Query()
	req := providerMatchesRequest{
		Competition: strings.ToUpper(strings.TrimSpace(query.Get("competition"))),
		DateFrom:    strings.TrimSpace(query.Get("dateFrom")),
		DateTo:      strings.TrimSpace(query.Get("dateTo")),
		Status:      strings.ToUpper(strings.TrimSpace(query.Get("status"))),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchQuery := usecase.MatchQuery{
		Competition: req.Competition,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Status:      req.Status,
	}
	if err := usecase.ValidateMatchQuery(matchQuery); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.providerService.GetMatches(ctx, matchQuery))
}

func (h *Handler) ListProviderLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderLiveMatches")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.providerService.GetLiveMatches(ctx))
}

func (h *Handler) GetProviderStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProviderStandings")
	defer span.End()

	req := competitionRequest{Competition: strings.ToUpper(strings.TrimSpace(r.PathValue("competition")))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.providerService.GetStandings(ctx, req.Competition))
}

func (h *Handler) ListProviderCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderCompetitions")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.providerService.GetCompetitions(ctx))
}

func (h *Handler) GetProviderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProviderStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.providerService.GetStatus())
}
