package service

import (
	"context"
	"fmt"
	"time"

	"github.com/midex/tourboard/internal/adapters/tabular"
	"github.com/midex/tourboard/internal/config"
)

// NewSource builds the configured table source with its decorators:
// fetch metrics, a rate limit for remote stores, and the ttl cache.
func NewSource(ctx context.Context, cfg config.SourceConfig) (tabular.Source, error) {
	kind := tabular.Kind(cfg.Kind)

	var base tabular.Source
	remote := false
	switch kind {
	case tabular.KindMemory:
		base = tabular.NewMemorySource(nil)
	case tabular.KindCSV:
		base = tabular.NewDirSource(cfg.Path)
	case tabular.KindXLSX:
		base = tabular.NewWorkbookSource(cfg.Path)
	case tabular.KindHTML:
		base = tabular.NewHTMLSource(cfg.BaseURL)
		remote = true
	case tabular.KindSheets:
		var opts []tabular.SheetsOption
		if cfg.CredentialsFile != "" {
			client, err := tabular.ServiceAccountClient(ctx, cfg.CredentialsFile)
			if err != nil {
				return nil, fmt.Errorf("%w: sheets credentials: %w", config.ErrLoadConfig, err)
			}
			opts = append(opts, tabular.WithSheetsClient(client))
		}
		base = tabular.NewSheetsSource(cfg.SpreadsheetID, opts...)
		remote = true
	default:
		return nil, &config.ConfigurationError{Field: "source.kind", Reason: fmt.Sprintf("unknown kind %q", cfg.Kind)}
	}

	src := tabular.Source(tabular.NewInstrumented(base, kind))
	if remote {
		src = tabular.NewRateLimited(src, cfg.RatePerSecond, cfg.RateBurst)
	}
	if cfg.CacheTTLSeconds > 0 {
		src = tabular.NewCached(src, time.Duration(cfg.CacheTTLSeconds)*time.Second,
			tabular.WithSharedFetchTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond))
	}
	return src, nil
}
