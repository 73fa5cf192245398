// Package service runs the standings pipeline and serves its read views to
// the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/midex/tourboard/internal/adapters/loader"
	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/standings"
	"github.com/midex/tourboard/internal/domain/types"
	"github.com/midex/tourboard/pkg/logger"
	"github.com/midex/tourboard/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Errors returned by read views.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// Snapshot is the outcome of one pipeline run. It is never mutated after Compute returns.
type Snapshot struct {
	RunID       string
	GeneratedAt time.Time
	Board       model.Leaderboard
	// Outcomes holds one entry per configured event, in calendar order.
	Outcomes []loader.Outcome
	// Registry is nil when no entrants table is configured or it failed to load.
	Registry    *eligibility.Registry
	RegistryErr error
}

// Unavailable names the events that could not be loaded, in calendar order.
func (s *Snapshot) Unavailable() []string {
	var out []string
	for _, o := range s.Outcomes {
		if o.Unavailable() {
			out = append(out, o.Event.Name)
		}
	}
	return out
}

// Service computes tour standings.
type Service struct {
	tour       *config.Tour
	loader     *loader.Loader
	aggregator *standings.Aggregator

	entrantsTable string
	concurrency   int
	now           func() time.Time
	logger        logger.Logger
	cacheStats    func() types.CacheStats

	mu   sync.RWMutex
	last *Snapshot
	took time.Duration
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEntrantsTable enables eligibility filtering from the named table.
func WithEntrantsTable(name string) Option {
	return func(s *Service) {
		s.entrantsTable = name
	}
}

// WithLoadConcurrency bounds how many tables are fetched at once.
func WithLoadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCacheStats reports table cache activity in Stats.
func WithCacheStats(fn func() types.CacheStats) Option {
	return func(s *Service) {
		s.cacheStats = fn
	}
}

// New constructs a Service for a validated tour.
func New(tour *config.Tour, ld *loader.Loader, opts ...Option) *Service {
	s := &Service{
		tour:        tour,
		loader:      ld,
		aggregator:  standings.NewAggregator(tour.Schedule),
		concurrency: 4,
		now:         time.Now,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute runs the pipeline: load every event and the entrants list, wait for
// all of them, then aggregate. Event failures degrade the result; only an
// empty calendar is an error.
func (s *Service) Compute(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{
		RunID:    uuid.NewString(),
		Outcomes: make([]loader.Outcome, len(s.tour.Events)),
	}
	log := s.logger.With(logger.String("run_id", snap.RunID))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ev := range s.tour.Events {
		g.Go(func() error {
			snap.Outcomes[i] = s.loader.Load(ctx, ev)
			return nil
		})
	}
	if s.entrantsTable != "" {
		g.Go(func() error {
			snap.Registry, snap.RegistryErr = s.loader.Entrants(ctx, s.entrantsTable,
				eligibility.WithEntryFee(s.tour.EntryFee),
				eligibility.WithPayoutShares(s.tour.PayoutShares))
			return nil
		})
	}
	_ = g.Wait()

	if snap.RegistryErr != nil {
		log.Warn(ctx, "entrants unavailable, standings are not filtered by eligibility",
			logger.Error(snap.RegistryErr))
	}

	inputs := make([]standings.EventInput, len(snap.Outcomes))
	for i, o := range snap.Outcomes {
		inputs[i] = standings.EventInput{Event: o.Event, Results: o.Results}
	}
	var opts []standings.Option
	if snap.Registry != nil {
		opts = append(opts, standings.WithRegistry(snap.Registry))
	}
	board, err := s.aggregator.Aggregate(inputs, opts...)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	snap.Board = board
	snap.GeneratedAt = s.now()

	took := time.Since(start)
	unavailable := snap.Unavailable()
	metrics.RecordAggregation(float64(took.Milliseconds()), len(board), len(unavailable))
	log.Info(ctx, "standings computed",
		logger.Int("events", len(snap.Outcomes)),
		logger.Int("unavailable", len(unavailable)),
		logger.Int("players", len(board)),
		logger.Any("took", took))

	s.mu.Lock()
	s.last, s.took = snap, took
	s.mu.Unlock()
	return snap, nil
}

// Leaderboard returns the presented standings; a positive limit keeps the top entries.
func (s *Service) Leaderboard(ctx context.Context, limit int) (types.Standings, error) {
	snap, err := s.Compute(ctx)
	if err != nil {
		return types.Standings{}, err
	}
	return standings.Present(snap.Board, snap.Unavailable(), snap.GeneratedAt, limit), nil
}

// TopN returns the top n ranked entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	st, err := s.Leaderboard(ctx, n)
	if err != nil {
		return nil, err
	}
	return st.Entries, nil
}

// Rank returns a player's aggregate with the per-event breakdown.
func (s *Service) Rank(ctx context.Context, name string) (model.PlayerAggregate, error) {
	snap, err := s.Compute(ctx)
	if err != nil {
		return model.PlayerAggregate{}, err
	}
	p, ok := snap.Board.Find(name)
	if !ok {
		return model.PlayerAggregate{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return p, nil
}

// Events returns the tour calendar.
func (s *Service) Events() []types.EventInfo {
	return standings.Calendar(s.tour.Events)
}

// EventResults loads one event and returns its results with points.
func (s *Service) EventResults(ctx context.Context, name string) (types.EventResults, error) {
	i := slices.IndexFunc(s.tour.Events, func(ev model.EventDefinition) bool { return ev.Name == name })
	if i < 0 {
		return types.EventResults{}, fmt.Errorf("%w: %q", ErrEventNotFound, name)
	}
	ev := s.tour.Events[i]
	out := s.loader.Load(ctx, ev)
	view := standings.EventDetail(ev, out.Results, s.tour.Schedule)
	if out.Unavailable() {
		view.Unavailable = true
		view.Warning = out.Err.Error()
	}
	return view, nil
}

// PointsTable returns the points schedule as a padded display table.
func (s *Service) PointsTable() types.PointsTable {
	return s.tour.Schedule.Table()
}

// Entrants lists registered entrants including zero scorers, with entry metrics.
// Available is false when no entrants listing could be read.
func (s *Service) Entrants(ctx context.Context) (types.Entrants, error) {
	snap, err := s.Compute(ctx)
	if err != nil {
		return types.Entrants{}, err
	}
	if snap.Registry == nil {
		empty := eligibility.New(nil,
			eligibility.WithEntryFee(s.tour.EntryFee),
			eligibility.WithPayoutShares(s.tour.PayoutShares))
		return types.Entrants{Metrics: empty.Metrics(), Entrants: []types.EntrantRow{}}, nil
	}
	return standings.EntrantsView(snap.Registry, snap.Board), nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.ServiceStats{
		Tour:          s.tour.Name,
		Season:        s.tour.Season,
		Events:        len(s.tour.Events),
		EntrantsTable: s.entrantsTable,
		Computed:      s.last != nil,
	}
	if s.last != nil {
		at := s.last.GeneratedAt
		st.LastRunID = s.last.RunID
		st.LastComputedAt = &at
		st.LastDurationMs = s.took.Milliseconds()
		st.Players = len(s.last.Board)
		st.UnavailableEvents = s.last.Unavailable()
		st.UnavailableCount = len(st.UnavailableEvents)
		st.EntrantsAvailable = s.last.Registry != nil
	}
	if s.cacheStats != nil {
		cs := s.cacheStats()
		st.Cache = &cs
	}
	return st
}
