package openligadb

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

func (p *Provider) CurrentMatches(ctx context.Context, league string) ([]feed.Match, error) {
	items, err := p.client.GetCurrentMatches(ctx, league)
	if err != nil {
		return nil, err
	}
	out := make([]feed.Match, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizeMatch(item))
	}
	return out, nil
}

// Standings returns the current season table. Rows without a published
// position are numbered by their order in the response.
func (p *Provider) Standings(ctx context.Context, league string) ([]feed.Standing, error) {
	rows, err := p.client.GetStandings(ctx, league, 0)
	if err != nil {
		return nil, err
	}
	out := make([]feed.Standing, 0, len(rows))
	for i, row := range rows {
		item := NormalizeStanding(row)
		if item.Position == 0 {
			item.Position = i + 1
		}
		out = append(out, item)
	}
	return out, nil
}

func (p *Provider) Competitions(ctx context.Context) ([]feed.Competition, error) {
	items, err := p.client.GetAvailableLeagues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]feed.Competition, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizeLeague(item))
	}
	return out, nil
}
