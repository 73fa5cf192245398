package sampledata

import (
	"context"
	"fmt"
	"time"

	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/pkg/logger"
)

// Run generates a season, writes it, and verifies a running service when
// cfg.BaseURL is set. The service must be configured to read cfg.Out.
func Run(ctx context.Context, tour *config.Tour, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "generating sample season",
		logger.String("tour", tour.Name),
		logger.Int("players", cfg.Players),
		logger.Int("seed", int(cfg.Seed)),
		logger.String("format", cfg.Format),
		logger.String("out", cfg.Out))

	season, err := Generate(tour, cfg)
	if err != nil {
		return nil, fmt.Errorf("season generation failed: %w", err)
	}
	stats.Players = len(season.Roster)
	for name, rows := range season.Tables {
		if name == cfg.Entrants {
			continue
		}
		stats.EventsGenerated++
		stats.RowsGenerated += len(rows)
	}

	if err := Write(ctx, cfg, season); err != nil {
		return nil, fmt.Errorf("writing season failed: %w", err)
	}

	want, err := Expected(ctx, tour, cfg, season)
	if err != nil {
		return nil, fmt.Errorf("computing expected standings failed: %w", err)
	}
	stats.Leaders = len(want.Entries)
	if cfg.Verbose {
		displayTopPerformers(ctx, want, cfg.TopN)
	}

	if cfg.BaseURL != "" {
		client := newHTTPClient(cfg.Timeout)
		if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("service health check failed: %w", err)
		}
		if err := Verify(ctx, client, cfg.BaseURL, want); err != nil {
			return nil, fmt.Errorf("result verification failed: %w", err)
		}
		stats.Verified = true
		log.Info(ctx, "service leaderboard verified", logger.String("baseURL", cfg.BaseURL))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.Int("players", stats.Players),
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("rowsGenerated", stats.RowsGenerated),
		logger.Int("leaders", stats.Leaders),
		logger.Any("verified", stats.Verified),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}
