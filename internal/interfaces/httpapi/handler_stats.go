package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-stats/internal/usecase"
)

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := querySeason(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, teamStatsRequest{TeamID: teamID, Season: season}); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.statsService.GetTeamStats(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamForm")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	last, err := queryInt(r, "last", usecase.DefaultFormLength)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, teamFormRequest{TeamID: teamID, Last: last}); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.statsService.GetTeamForm(ctx, teamID, last)
	if err != nil {
		h.logger.WarnContext(ctx, "get team form failed", "team_id", teamID, "last", last, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := querySeason(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, standingsRequest{LeagueID: leagueID, Season: season}); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.statsService.GetStandings(ctx, leagueID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetH2H(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetH2H")
	defer span.End()

	req, err := h.teamPair(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.statsService.GetH2H(ctx, req.Team1ID, req.Team2ID)
	if err != nil {
		h.logger.WarnContext(ctx, "get h2h failed", "team1_id", req.Team1ID, "team2_id", req.Team2ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CompareTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareTeams")
	defer span.End()

	req, err := h.teamPair(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.statsService.CompareTeams(ctx, req.Team1ID, req.Team2ID)
	if err != nil {
		h.logger.WarnContext(ctx, "compare teams failed", "team1_id", req.Team1ID, "team2_id", req.Team2ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) teamPair(r *http.Request) (teamPairRequest, error) {
	team1ID, err := pathID(r, "team1ID")
	if err != nil {
		return teamPairRequest{}, err
	}
	team2ID, err := pathID(r, "team2ID")
	if err != nil {
		return teamPairRequest{}, err
	}
	req := teamPairRequest{Team1ID: team1ID, Team2ID: team2ID}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return teamPairRequest{}, err
	}
	return req, nil
}

func (h *Handler) RecalculateStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStats")
	defer span.End()

	season, err := querySeason(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, recalculateRequest{Season: season}); err != nil {
		writeError(ctx, w, err)
		return
	}

	target := 0
	if season != nil {
		target = *season
	}
	out, err := h.statsService.RecalculateAllStats(ctx, target)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate stats failed", "season", target, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
