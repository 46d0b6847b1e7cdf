package footballdata

import (
	"context"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
)

// Provider adapts Client to the normalized feed model.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Configured() bool {
	return p.client.Configured()
}

func (p *Provider) Matches(ctx context.Context, competition string, filter feed.MatchFilter) ([]feed.Match, error) {
	query := MatchQuery{DateFrom: filter.DateFrom, DateTo: filter.DateTo, Status: filter.Status}

	var (
		list MatchList
		err  error
	)
	if competition != "" {
		list, err = p.client.GetCompetitionMatches(ctx, competition, query)
	} else {
		list, err = p.client.GetMatches(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	out := make([]feed.Match, 0, len(list.Matches))
	for _, item := range list.Matches {
		out = append(out, NormalizeMatch(item))
	}
	return out, nil
}

func (p *Provider) Standings(ctx context.Context, competition string) ([]feed.Standing, error) {
	resp, err := p.client.GetStandings(ctx, competition, 0)
	if err != nil {
		return nil, err
	}
	table := resp.TotalTable()
	out := make([]feed.Standing, 0, len(table))
	for _, row := range table {
		out = append(out, NormalizeStanding(row))
	}
	return out, nil
}

func (p *Provider) Competitions(ctx context.Context) ([]feed.Competition, error) {
	resp, err := p.client.GetCompetitions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]feed.Competition, 0, len(resp.Competitions))
	for _, item := range resp.Competitions {
		out = append(out, NormalizeCompetition(item))
	}
	return out, nil
}

func (p *Provider) RequestsPerMinute() int {
	return p.client.limiter.PerMinute()
}
