package feed

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

// Source tags identify which provider (or failure mode) served a result.
const (
	SourcePrimary    = "football-data.org"
	SourceFallback   = "openligadb"
	SourceNoCoverage = SourceFallback + " (no coverage)"
	SourceError      = "error"
)

// Id prefixes keep provider ids from colliding.
const (
	PrefixPrimary  = "fd"
	PrefixFallback = "ol"
)

const UnknownName = "Unknown"

type TeamRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ShortName *string `json:"shortName,omitempty"`
	Crest     *string `json:"crest,omitempty"`
}

type CompetitionRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Code    *string `json:"code,omitempty"`
	Country *string `json:"country,omitempty"`
	Emblem  *string `json:"emblem,omitempty"`
	Season  int     `json:"season,omitempty"`
}

type HalfTime struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Home     *int      `json:"home"`
	Away     *int      `json:"away"`
	HalfTime *HalfTime `json:"halfTime,omitempty"`
}

// Match is the provider-independent shape every upstream match maps onto.
type Match struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Status      fixture.Status `json:"status"`
	UTCDate     time.Time      `json:"utcDate"`
	Matchday    int            `json:"matchday,omitempty"`
	Minute      *int           `json:"minute,omitempty"`
	Venue       string         `json:"venue,omitempty"`
	Competition CompetitionRef `json:"competition"`
	HomeTeam    TeamRef        `json:"homeTeam"`
	AwayTeam    TeamRef        `json:"awayTeam"`
	Score       Score          `json:"score"`
}

type Standing struct {
	Position       int     `json:"position"`
	Team           TeamRef `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Form           *string `json:"form,omitempty"`
}

// MatchFilter narrows a provider match listing. Dates are YYYY-MM-DD.
type MatchFilter struct {
	DateFrom string
	DateTo   string
	Status   string
}

type Competition struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Code   *string `json:"code,omitempty"`
	Season int     `json:"season,omitempty"`
	Source string  `json:"source"`
}

const unknownRaw = "unknown"

// PrefixedID renders a provider id as "<prefix>-<raw>". Missing ids render
// as "<prefix>-unknown" so rows never collapse onto an empty key.
func PrefixedID(prefix, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		raw = unknownRaw
	}
	return prefix + "-" + raw
}

// KnownID reports whether id carries a real provider id rather than the
// "<prefix>-unknown" placeholder.
func KnownID(id string) bool {
	_, raw, ok := ParseExternalID(id)
	return ok && raw != unknownRaw
}

// ParseExternalID splits "<prefix>-<raw>" back into its parts.
func ParseExternalID(id string) (prefix, raw string, ok bool) {
	prefix, raw, ok = strings.Cut(id, "-")
	if !ok || prefix == "" || raw == "" {
		return "", "", false
	}
	return prefix, raw, true
}

func NameOrUnknown(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return UnknownName
	}
	return name
}

// OptionalString returns nil for blank strings.
func OptionalString(value string) *string {
	if value = strings.TrimSpace(value); value == "" {
		return nil
	}
	return &value
}

func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
