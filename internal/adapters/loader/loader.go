// Package loader fetches event and entrant tables and turns them into domain values.
//
// Event loads never fail outward: a source error or an unreadable sheet is
// carried in the Outcome so the rest of the tour can still be scored.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/midex/tourboard/internal/adapters/tabular"
	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/results"
	"github.com/midex/tourboard/pkg/logger"
	"github.com/midex/tourboard/pkg/metrics"
)

// DefaultFetchTimeout bounds one table fetch.
const DefaultFetchTimeout = 10 * time.Second

// Outcome is the result of loading one event.
type Outcome struct {
	Event   model.EventDefinition
	Layout  results.Layout
	Results []model.NormalizedResult
	Skipped []results.Skip
	// Err is an *EventUnavailableError when the event could not be read.
	Err error
}

// Unavailable reports whether the event failed to load.
func (o Outcome) Unavailable() bool {
	return o.Err != nil
}

// Loader reads tables from a source.
type Loader struct {
	src     tabular.Source
	timeout time.Duration
	log     logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a Loader over src.
func New(src tabular.Source, opts ...Option) *Loader {
	l := &Loader{src: src, timeout: DefaultFetchTimeout, log: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and normalizes one event. An empty or all-blank sheet is an
// event that has not been played and yields no results without error.
func (l *Loader) Load(ctx context.Context, ev model.EventDefinition) Outcome {
	start := time.Now()
	out := Outcome{Event: ev}

	rows, err := l.fetch(ctx, ev.Name)
	if err == nil && !results.Blank(rows) {
		n := results.Normalize(ev.Name, rows)
		out.Layout = n.Layout
		if n.Layout == results.LayoutUnreadable {
			err = ErrUnreadableSchema
		} else {
			out.Results, out.Skipped = n.Results, n.Skipped
		}
	}

	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		out.Err = &EventUnavailableError{Event: ev.Name, Cause: err}
		metrics.RecordEventLoad("unavailable", elapsed)
		l.log.Warn(ctx, "event unavailable",
			logger.String("event", ev.Name),
			logger.Error(err))
		return out
	}

	for _, s := range out.Skipped {
		metrics.RecordRowSkipped(string(s.Reason))
		l.log.Debug(ctx, "row skipped",
			logger.String("event", ev.Name),
			logger.Int("row", s.Row),
			logger.String("reason", string(s.Reason)))
	}
	metrics.RecordEventLoad("ok", elapsed)
	l.log.Debug(ctx, "event loaded",
		logger.String("event", ev.Name),
		logger.String("layout", out.Layout.String()),
		logger.Int("results", len(out.Results)),
		logger.Int("skipped", len(out.Skipped)))
	return out
}

// Entrants loads the eligibility registry from the entrants table.
func (l *Loader) Entrants(ctx context.Context, table string, opts ...eligibility.Option) (*eligibility.Registry, error) {
	rows, err := l.fetch(ctx, table)
	if err != nil {
		metrics.RecordEntrantsLoadFailure()
		return nil, fmt.Errorf("loading entrants from %q: %w", table, err)
	}
	reg := eligibility.FromRows(rows, opts...)
	l.log.Debug(ctx, "entrants loaded", logger.Int("entrants", len(reg.Names())))
	return reg, nil
}

func (l *Loader) fetch(ctx context.Context, table string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.src.Table(ctx, table)
}
