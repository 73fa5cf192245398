// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Tier classifies an event and selects its points schedule.
type Tier int

// Known tiers, ordered by weight.
const (
	TierUnknown Tier = iota
	TierStandard
	TierElevated
	TierMajor
	TierPlayoff
)

// Tiers lists the known tiers in display order.
var Tiers = []Tier{TierStandard, TierElevated, TierMajor, TierPlayoff}

var tierKeys = map[Tier]string{
	TierStandard: "standard",
	TierElevated: "elevated",
	TierMajor:    "major",
	TierPlayoff:  "playoff",
}

var tierLabels = map[Tier]string{
	TierStandard: "Standard Event",
	TierElevated: "Elevated Event",
	TierMajor:    "Major",
	TierPlayoff:  "Playoff Event",
}

// ParseTier accepts a config key ("major") or a display label ("Playoff Event").
func ParseTier(s string) (Tier, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, " event")
	for t, key := range tierKeys {
		if key == norm {
			return t, nil
		}
	}
	return TierUnknown, fmt.Errorf("unknown tier %q", s)
}

// String returns the config key of the tier.
func (t Tier) String() string {
	if k, ok := tierKeys[t]; ok {
		return k
	}
	return "unknown"
}

// Label returns the display label of the tier.
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return "Unknown"
}

// MarshalText encodes the tier as its config key.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// EventDefinition is one configured tour event. Immutable after configuration.
type EventDefinition struct {
	Name string
	Tier Tier
	Date time.Time
}

// NormalizedResult is one clean finishing row of an event.
type NormalizedResult struct {
	EventName  string
	PlayerName string   // trimmed, non-empty
	Position   int      // >= 1
	Handicap   *int     // present when the sheet carries one
	Score      *float64 // present when the sheet carries one
}

// EventPoints is one line of a player's per-event breakdown.
type EventPoints struct {
	EventName string `json:"event" yaml:"event"`
	Points    int    `json:"points" yaml:"points"`
}

// PlayerAggregate is a player's season total built by a single aggregation pass.
type PlayerAggregate struct {
	Rank           int           `json:"rank" yaml:"rank"`
	Name           string        `json:"name" yaml:"name"`
	TotalPoints    int           `json:"points" yaml:"points"`
	PerEventPoints []EventPoints `json:"events" yaml:"events"`
}

// Leaderboard is the ranked season standings, best first.
type Leaderboard []PlayerAggregate

// Find returns the aggregate for name, if ranked.
func (l Leaderboard) Find(name string) (PlayerAggregate, bool) {
	for _, p := range l {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerAggregate{}, false
}
