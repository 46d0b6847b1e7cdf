package cache

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatsNamespace    = "stats"
	FixturesNamespace = "fixtures"
	ProviderNamespace = "provider"

	StatsPattern    = StatsNamespace + ":*"
	FixturesPattern = FixturesNamespace + ":*"
)

// Stats categories.
const (
	CategoryTeam      = "team"
	CategoryForm      = "form"
	CategoryStandings = "standings"
	CategoryH2H       = "h2h"
)

// Key builds "stats:<category>:<part>:<part>...".
func Key(category string, parts ...any) string {
	return join(StatsNamespace, category, parts...)
}

// FixtureKey builds "fixtures:<kind>:<part>...".
func FixtureKey(kind string, parts ...any) string {
	return join(FixturesNamespace, kind, parts...)
}

func ProviderKey(kind string, parts ...any) string {
	return join(ProviderNamespace, kind, parts...)
}

func join(namespace, kind string, parts ...any) string {
	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte(':')
	b.WriteString(kind)
	for _, part := range parts {
		b.WriteByte(':')
		b.WriteString(fmt.Sprint(part))
	}
	return b.String()
}

// TTLs holds the expiry per cached kind.
type TTLs struct {
	Live              time.Duration
	Upcoming          time.Duration
	Fixture           time.Duration
	TeamStats         time.Duration
	Form              time.Duration
	Standings         time.Duration
	H2H               time.Duration
	ProviderMatches   time.Duration
	ProviderStandings time.Duration
}

func DefaultTTLs() TTLs {
	return TTLs{
		Live:              30 * time.Second,
		Upcoming:          5 * time.Minute,
		Fixture:           5 * time.Minute,
		TeamStats:         time.Hour,
		Form:              time.Hour,
		Standings:         30 * time.Minute,
		H2H:               24 * time.Hour,
		ProviderMatches:   time.Minute,
		ProviderStandings: 24 * time.Hour,
	}
}

// WithDefaults fills every zero duration from DefaultTTLs.
func (t TTLs) WithDefaults() TTLs {
	d := DefaultTTLs()
	fill := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.Live, d.Live)
	fill(&t.Upcoming, d.Upcoming)
	fill(&t.Fixture, d.Fixture)
	fill(&t.TeamStats, d.TeamStats)
	fill(&t.Form, d.Form)
	fill(&t.Standings, d.Standings)
	fill(&t.H2H, d.H2H)
	fill(&t.ProviderMatches, d.ProviderMatches)
	fill(&t.ProviderStandings, d.ProviderStandings)
	return t
}
