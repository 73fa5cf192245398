// Package cli implements the standings command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	app "github.com/midex/tourboard/internal/app"
	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/pkg/logger"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitConfig  = 2
)

type flags struct {
	config string
	format string
	limit  int
	event  string
	player string
}

type runner struct {
	flags
	out    io.Writer
	errOut io.Writer
}

// NewRootCmd creates the root command writing results to out and logs to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	r := &runner{out: out, errOut: errOut}
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print tour points standings",
		Long: `Compute the season standings from the configured results source.
Events whose sheets cannot be read are reported and skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.leaderboard(cmd.Context())
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.config, "config", os.Getenv(config.EnvConfigPath), "YAML config file (or env: "+config.EnvConfigPath+")")
	pf.StringVar(&r.format, "format", string(FormatText), "Output format: text, json or yaml")
	cmd.Flags().IntVar(&r.limit, "limit", 0, "Show only the top N players (0 for all)")

	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Show one event's results with points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.eventResults(cmd.Context())
		},
	}
	eventCmd.Flags().StringVar(&r.event, "name", "", "Event name (required)")
	_ = eventCmd.MarkFlagRequired("name")

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "Show a player's total and per-event breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.rank(cmd.Context())
		},
	}
	rankCmd.Flags().StringVar(&r.player, "player", "", "Player name (required)")
	_ = rankCmd.MarkFlagRequired("player")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "events",
			Short: "List the tour calendar",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return r.events(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "points",
			Short: "Show the points schedule",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return r.points(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "entrants",
			Short: "List registered entrants and prize money",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return r.entrants(cmd.Context())
			},
		},
		eventCmd,
		rankCmd,
	)
	return cmd
}

// service loads configuration and wires the standings service.
func (r *runner) service(ctx context.Context) (*app.Service, OutputFormat, error) {
	format, err := ParseFormat(r.format)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFile(ctx, r.config)
	if err != nil {
		return nil, "", err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(r.errOut)); err != nil {
		return nil, "", err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("warn")
	}
	svc, err := app.FromConfig(ctx, cfg, logger.Get())
	if err != nil {
		return nil, "", err
	}
	return svc, format, nil
}

func (r *runner) leaderboard(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	st, err := svc.Leaderboard(ctx, r.limit)
	if err != nil {
		return fmt.Errorf("computing standings: %w", err)
	}
	return Write(r.out, format, st)
}

func (r *runner) events(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	return Write(r.out, format, svc.Events())
}

func (r *runner) eventResults(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	view, err := svc.EventResults(ctx, strings.TrimSpace(r.event))
	if err != nil {
		return err
	}
	return Write(r.out, format, view)
}

func (r *runner) points(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	return Write(r.out, format, svc.PointsTable())
}

func (r *runner) entrants(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	v, err := svc.Entrants(ctx)
	if err != nil {
		return fmt.Errorf("computing standings: %w", err)
	}
	return Write(r.out, format, v)
}

func (r *runner) rank(ctx context.Context) error {
	svc, format, err := r.service(ctx)
	if err != nil {
		return err
	}
	p, err := svc.Rank(ctx, strings.TrimSpace(r.player))
	if err != nil {
		return err
	}
	return Write(r.out, format, p)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrLoadConfig):
		return ExitConfig
	default:
		return ExitError
	}
}

// Execute runs the CLI.
func Execute(ctx context.Context) int {
	err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}
