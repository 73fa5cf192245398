package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/midex/tourboard/internal/adapters/tabular"
)

// EnvConfigPath names the variable holding an optional YAML config file.
const EnvConfigPath = "TOUR_CONFIG"

var unmarshalConf = koanf.UnmarshalConf{Tag: "koanf"}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if TOUR_CONFIG is set
//  3. env (prefix TOUR_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(EnvConfigPath))
}

// LoadFile is Load with an explicit config path; empty means defaults and env only.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: TOUR_ADDR, TOUR_ENTRY_FEE, TOUR_SOURCE_KIND, ...
	// Keys stay flat except source_* which maps into the source section.
	envProvider := env.Provider("TOUR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tour_")
		if rest, ok := strings.CutPrefix(s, "source_"); ok {
			return "source." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Lists replace the defaults wholesale instead of merging by index.
	if k.Exists("events") {
		cfg.Events = nil
		if err := k.UnmarshalWithConf("events", &cfg.Events, unmarshalConf); err != nil {
			return nil, fmt.Errorf("%w: events: %w", ErrLoadConfig, err)
		}
	}
	if k.Exists("payout_shares") {
		cfg.PayoutShares = nil
		if err := k.UnmarshalWithConf("payout_shares", &cfg.PayoutShares, unmarshalConf); err != nil {
			return nil, fmt.Errorf("%w: payout_shares: %w", ErrLoadConfig, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return invalid("addr", "must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return invalid("log_format", "unknown format %q", c.LogFormat)
	}
	switch tabular.Kind(c.Source.Kind) {
	case tabular.KindMemory, tabular.KindXLSX, tabular.KindCSV:
		if c.Source.Kind != string(tabular.KindMemory) && c.Source.Path == "" {
			return invalid("source.path", "required for %s sources", c.Source.Kind)
		}
	case tabular.KindHTML:
		if c.Source.BaseURL == "" {
			return invalid("source.base_url", "required for html sources")
		}
	case tabular.KindSheets:
		if c.Source.SpreadsheetID == "" {
			return invalid("source.spreadsheet_id", "required for sheets sources")
		}
	default:
		return invalid("source.kind", "unknown kind %q", c.Source.Kind)
	}
	if c.Source.LoadConcurrency < 1 {
		return invalid("source.load_concurrency", "must be at least 1")
	}
	if c.MaxLeaderboardLimit < 1 {
		return invalid("max_leaderboard_limit", "must be at least 1")
	}
	return nil
}
