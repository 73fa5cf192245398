package service

import (
	"context"
	"time"

	"github.com/midex/tourboard/internal/adapters/loader"
	"github.com/midex/tourboard/internal/adapters/tabular"
	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/internal/domain/types"
	"github.com/midex/tourboard/pkg/logger"
)

// FromConfig validates cfg and wires source, loader and service together.
// Configuration problems are returned as *config.ConfigurationError.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	tour, err := cfg.BuildTour()
	if err != nil {
		return nil, err
	}
	src, err := NewSource(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	ld := loader.New(src,
		loader.WithFetchTimeout(time.Duration(cfg.Source.FetchTimeoutMS)*time.Millisecond),
		loader.WithLogger(log.Named("loader")),
	)
	opts := []Option{
		WithLogger(log),
		WithEntrantsTable(cfg.Source.EntrantsTable),
		WithLoadConcurrency(cfg.Source.LoadConcurrency),
	}
	if cached, ok := src.(*tabular.Cached); ok {
		opts = append(opts, WithCacheStats(func() types.CacheStats {
			st := cached.Stats()
			return types.CacheStats{Hits: st.Hits, Misses: st.Misses, Entries: st.Entries}
		}))
	}
	return New(tour, ld, opts...), nil
}
