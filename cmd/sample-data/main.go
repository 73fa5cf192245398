package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/internal/sampledata"
	"github.com/midex/tourboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers     = 40
	defaultSeed        = 2025
	defaultTopN        = 10
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		out      = flag.String("out", "", "CSV directory or XLSX file (default: source.path from config)")
		format   = flag.String("format", "", "Output format: csv or xlsx (default: source.kind from config)")
		players  = flag.Int("players", defaultPlayers, "Number of rostered players")
		seed     = flag.Uint64("seed", defaultSeed, "Generator seed")
		unplayed = flag.String("unplayed", "", "Comma-separated events to leave without results")
		baseURL  = flag.String("url", "", "Base URL of a running service to verify, e.g. http://localhost:9080")
		topN     = flag.Int("top", defaultTopN, "Number of leaders to log with -verbose")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(2)
	}
	tour, err := cfg.BuildTour()
	if err != nil {
		os.Stderr.WriteString("Invalid tour: " + err.Error() + "\n")
		os.Exit(2)
	}

	run := &sampledata.Config{
		Out:      *out,
		Format:   *format,
		Players:  *players,
		Seed:     *seed,
		Entrants: cfg.Source.EntrantsTable,
		BaseURL:  strings.TrimRight(*baseURL, "/"),
		Timeout:  *timeout,
		TopN:     *topN,
		Verbose:  *verbose,
	}
	if run.Format == "" {
		run.Format = cfg.Source.Kind
	}
	if run.Out == "" {
		run.Out = cfg.Source.Path
	}
	for _, name := range strings.Split(*unplayed, ",") {
		if name = strings.TrimSpace(name); name != "" {
			run.Unplayed = append(run.Unplayed, name)
		}
	}

	if _, err := sampledata.Run(ctx, tour, run); err != nil {
		os.Stderr.WriteString("Sample run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
