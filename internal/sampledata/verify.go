package sampledata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/midex/tourboard/internal/adapters/loader"
	"github.com/midex/tourboard/internal/adapters/tabular"
	service "github.com/midex/tourboard/internal/app"
	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/internal/domain/types"
	"github.com/midex/tourboard/pkg/logger"
)

// Expected runs the pipeline over the generated tables held in memory.
func Expected(ctx context.Context, tour *config.Tour, cfg *Config, s *Season) (types.Standings, error) {
	ld := loader.New(tabular.NewMemorySource(s.Tables))
	svc := service.New(tour, ld, service.WithEntrantsTable(cfg.Entrants))
	return svc.Leaderboard(ctx, 0)
}

// Verify fetches the service leaderboard and compares it with want.
func Verify(ctx context.Context, client *http.Client, baseURL string, want types.Standings) error {
	got, err := fetchLeaderboard(ctx, client, baseURL)
	if err != nil {
		return err
	}
	diff := cmp.Diff(want, got,
		cmpopts.IgnoreFields(types.Standings{}, "GeneratedAt"),
		cmpopts.EquateEmpty(),
	)
	if diff != "" {
		return fmt.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
	return nil
}

func fetchLeaderboard(ctx context.Context, client *http.Client, baseURL string) (types.Standings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/leaderboard", http.NoBody)
	if err != nil {
		return types.Standings{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return types.Standings{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Standings{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.Standings{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	var st types.Standings
	if err := json.Unmarshal(body, &st); err != nil {
		return types.Standings{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return st, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	_ = resp.Body.Close()

	// Any 200 is healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// displayTopPerformers logs the leading players.
func displayTopPerformers(ctx context.Context, st types.Standings, topN int) {
	n := min(topN, len(st.Entries))
	for _, e := range st.Entries[:n] {
		logger.Get().Info(ctx, "leader",
			logger.Int("rank", e.Rank),
			logger.String("name", e.Name),
			logger.Int("points", e.Points))
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
