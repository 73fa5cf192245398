// Package types contains the read shapes handed to presentation layers.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medal is a podium styling hook.
type Medal string

// Podium medals.
const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank   int    `json:"rank" yaml:"rank"`
	Name   string `json:"name" yaml:"name"`
	Points int    `json:"points" yaml:"points"`
	Medal  Medal  `json:"medal,omitempty" yaml:"medal,omitempty"`
	// Tied marks rows whose total equals a neighbour's.
	Tied bool `json:"tied,omitempty" yaml:"tied,omitempty"`
}

// Standings is a presented leaderboard plus advisory notices.
type Standings struct {
	GeneratedAt       time.Time `json:"generated_at" yaml:"generated_at"`
	Entries           []Entry   `json:"entries" yaml:"entries"`
	UnavailableEvents []string  `json:"unavailable_events,omitempty" yaml:"unavailable_events,omitempty"`
}

// EventInfo is a row of the event calendar.
type EventInfo struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
	Tier string `json:"tier" yaml:"tier"`
}

// EventRow is one normalized result with its computed points.
type EventRow struct {
	Position int      `json:"position" yaml:"position"`
	Name     string   `json:"name" yaml:"name"`
	Handicap *int     `json:"handicap,omitempty" yaml:"handicap,omitempty"`
	Score    *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Points   int      `json:"points" yaml:"points"`
}

// EventResults is the event-detail view.
type EventResults struct {
	Event       EventInfo  `json:"event" yaml:"event"`
	Rows        []EventRow `json:"rows" yaml:"rows"`
	Unavailable bool       `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
	Warning     string     `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// PointsTable is the points schedule rendered for display, padded with zeros.
type PointsTable struct {
	Tiers []string    `json:"tiers" yaml:"tiers"`
	Rows  []PointsRow `json:"rows" yaml:"rows"`
}

// PointsRow holds points per tier for one finishing place, in PointsTable.Tiers order.
type PointsRow struct {
	Place  int   `json:"place" yaml:"place"`
	Points []int `json:"points" yaml:"points"`
}

// Payout is the prize for a finishing place.
type Payout struct {
	Place  int             `json:"place" yaml:"place"`
	Share  decimal.Decimal `json:"share" yaml:"share"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// EntryMetrics summarises registration and prize money.
type EntryMetrics struct {
	EntryCount int             `json:"entry_count" yaml:"entry_count"`
	EntryFee   decimal.Decimal `json:"entry_fee" yaml:"entry_fee"`
	PrizePool  decimal.Decimal `json:"prize_pool" yaml:"prize_pool"`
	Payouts    []Payout        `json:"payouts" yaml:"payouts"`
}

// EntrantRow lists a registered entrant with their points, zero scorers included.
type EntrantRow struct {
	Name   string `json:"name" yaml:"name"`
	Points int    `json:"points" yaml:"points"`
	Rank   int    `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// Entrants is the eligibility listing view.
type Entrants struct {
	Metrics  EntryMetrics `json:"metrics" yaml:"metrics"`
	Entrants []EntrantRow `json:"entrants" yaml:"entrants"`
	// Available is false when the entrants listing could not be loaded.
	Available bool `json:"available" yaml:"available"`
}

// CacheStats reports table cache activity.
type CacheStats struct {
	Hits    int64 `json:"hits" yaml:"hits"`
	Misses  int64 `json:"misses" yaml:"misses"`
	Entries int   `json:"entries" yaml:"entries"`
}

// ServiceStats is the monitoring view of the standings service.
type ServiceStats struct {
	Tour              string      `json:"tour" yaml:"tour"`
	Season            int         `json:"season" yaml:"season"`
	Events            int         `json:"events" yaml:"events"`
	EntrantsTable     string      `json:"entrants_table,omitempty" yaml:"entrants_table,omitempty"`
	Computed          bool        `json:"computed" yaml:"computed"`
	LastRunID         string      `json:"last_run_id,omitempty" yaml:"last_run_id,omitempty"`
	LastComputedAt    *time.Time  `json:"last_computed_at,omitempty" yaml:"last_computed_at,omitempty"`
	LastDurationMs    int64       `json:"last_duration_ms" yaml:"last_duration_ms"`
	Players           int         `json:"players" yaml:"players"`
	UnavailableEvents []string    `json:"unavailable_events,omitempty" yaml:"unavailable_events,omitempty"`
	UnavailableCount  int         `json:"unavailable_count" yaml:"unavailable_count"`
	EntrantsAvailable bool        `json:"entrants_available" yaml:"entrants_available"`
	Cache             *CacheStats `json:"cache,omitempty" yaml:"cache,omitempty"`
}
