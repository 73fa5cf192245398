// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Validation that turns raw config into domain values lives in BuildTour.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TourName and Season label the standings.
	TourName string `koanf:"tour_name"`
	Season   int    `koanf:"season"`

	// EntryFee is the per-entrant fee as a decimal string, e.g. "20" or "12.50".
	EntryFee string `koanf:"entry_fee"`

	// PayoutShares splits the prize pool by finishing place, as decimal fractions.
	PayoutShares []string `koanf:"payout_shares"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	Source SourceConfig `koanf:"source"`

	// Events is the tour calendar in processing order.
	Events []EventConfig `koanf:"events"`

	// Points maps a tier key to points by finishing place, 1st first.
	Points map[string][]int `koanf:"points"`
}

// SourceConfig selects and tunes where result tables are read from.
type SourceConfig struct {
	// Kind is one of memory, xlsx, csv, html, sheets.
	Kind string `koanf:"kind"`

	// Path is the workbook file (xlsx) or directory (csv).
	Path string `koanf:"path"`

	// SpreadsheetID identifies the spreadsheet for the sheets kind.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// BaseURL is the HTML export endpoint for the html kind.
	BaseURL string `koanf:"base_url"`

	// CredentialsFile is a service-account key for the sheets kind.
	CredentialsFile string `koanf:"credentials_file"`

	// EntrantsTable names the entrants listing. Empty disables eligibility filtering.
	EntrantsTable string `koanf:"entrants_table"`

	FetchTimeoutMS  int     `koanf:"fetch_timeout_ms"`
	CacheTTLSeconds int     `koanf:"cache_ttl_seconds"`
	RatePerSecond   float64 `koanf:"rate_per_second"`
	RateBurst       int     `koanf:"rate_burst"`
	LoadConcurrency int     `koanf:"load_concurrency"`
}

// EventConfig is one calendar entry.
type EventConfig struct {
	Name string `koanf:"name"`
	Tier string `koanf:"tier"`
	// Date is YYYY-MM-DD.
	Date string `koanf:"date"`
}

// New creates a Config with defaults for the 2025 MidEx Cup. Context is
// accepted first to satisfy the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		TourName:            "The MidEx Cup",
		Season:              2025,
		EntryFee:            "20",
		PayoutShares:        []string{"0.50", "0.35", "0.15"},
		MaxLeaderboardLimit: 100,
		Source: SourceConfig{
			Kind:            "csv",
			Path:            "./data",
			EntrantsTable:   "Entrants",
			FetchTimeoutMS:  10_000,
			CacheTTLSeconds: 300,
			RatePerSecond:   1,
			RateBurst:       5,
			LoadConcurrency: 4,
		},
		Events: defaultEvents(),
		Points: defaultPoints(),
	}
}

func defaultEvents() []EventConfig {
	return []EventConfig{
		{Name: "May Stableford", Tier: "standard", Date: "2025-05-05"},
		{Name: "May Medal", Tier: "elevated", Date: "2025-05-19"},
		{Name: "Rover Medal", Tier: "major", Date: "2025-06-08"},
		{Name: "Stableford Handicap Trophy", Tier: "major", Date: "2025-06-23"},
		{Name: "Club Championships (r1)", Tier: "playoff", Date: "2025-07-06"},
		{Name: "Club Championships (r2)", Tier: "playoff", Date: "2025-07-07"},
		{Name: "July Stableford", Tier: "standard", Date: "2025-07-21"},
		{Name: "August Stableford (Red Tee)", Tier: "standard", Date: "2025-08-04"},
		{Name: "August Medal", Tier: "elevated", Date: "2025-09-10"},
		{Name: "August Stableford", Tier: "standard", Date: "2025-09-18"},
		{Name: "Mid Sussex Masters", Tier: "major", Date: "2025-09-15"},
		{Name: "September Stableford", Tier: "standard", Date: "2025-09-29"},
	}
}

func defaultPoints() map[string][]int {
	return map[string][]int{
		"standard": {300, 180, 114, 81, 66, 60, 54, 51, 48, 45, 42, 39, 36, 34, 33, 32},
		"elevated": {550, 330, 209, 149, 121, 110, 99, 94, 88, 83, 77, 72, 66, 63, 61, 58},
		"major":    {750, 450, 285, 203, 165, 150, 135, 128, 120, 113, 105, 98, 90, 86, 83, 80},
		"playoff":  {1200, 720, 456, 324, 264, 240, 216, 204, 192, 180, 168, 156, 144, 137, 132, 127},
	}
}
