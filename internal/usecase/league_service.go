package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
)

type LeagueView struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Country    string `json:"country,omitempty"`
	Season     int    `json:"season"`
	CrestURL   string `json:"crestUrl,omitempty"`
}

func leagueView(l league.League) LeagueView {
	return LeagueView{
		ID:         l.ID,
		ExternalID: l.ExternalID,
		Name:       l.Name,
		Country:    l.Country,
		Season:     l.Season,
		CrestURL:   l.CrestURL,
	}
}

type TeamView struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	ShortCode  string `json:"shortCode,omitempty"`
	CrestURL   string `json:"crestUrl,omitempty"`
	LeagueID   int64  `json:"leagueId,omitempty"`
	Country    string `json:"country,omitempty"`
}

func teamView(t team.Team) TeamView {
	return TeamView{
		ID:         t.ID,
		ExternalID: t.ExternalID,
		Name:       t.Name,
		ShortCode:  t.ShortCode,
		CrestURL:   t.CrestURL,
		LeagueID:   t.LeagueID,
		Country:    t.Country,
	}
}

// LeagueService serves the stored league and team catalog.
type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
	}
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int64) (LeagueView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	if leagueID <= 0 {
		return LeagueView{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueView{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	return leagueView(item), nil
}

func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID int64) ([]TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeamsByLeague")
	defer span.End()

	if _, err := s.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	out := make([]TeamView, 0, len(teams))
	for _, item := range teams {
		out = append(out, teamView(item))
	}
	return out, nil
}

func (s *LeagueService) GetTeam(ctx context.Context, teamID int64) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return TeamView{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamView{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamView{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return teamView(item), nil
}
