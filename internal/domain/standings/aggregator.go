// Package standings turns per-event results into the ranked season leaderboard.
package standings

import (
	"cmp"
	"errors"
	"slices"

	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/scoring"
)

// ErrNoEvents is returned when aggregation is asked to run over no events at all.
var ErrNoEvents = errors.New("no events configured")

// EventInput pairs an event with its normalized results. Results may be empty
// when the event has not been played or could not be loaded.
type EventInput struct {
	Event   model.EventDefinition
	Results []model.NormalizedResult
}

// Aggregator combines event results with a points schedule.
type Aggregator struct {
	schedule scoring.Schedule
}

// NewAggregator creates an aggregator bound to a schedule.
func NewAggregator(schedule scoring.Schedule) *Aggregator {
	return &Aggregator{schedule: schedule}
}

// Option configures a single aggregation pass.
type Option func(*pass)

type pass struct {
	registry *eligibility.Registry
}

// WithRegistry restricts the leaderboard to registered entrants.
func WithRegistry(r *eligibility.Registry) Option {
	return func(p *pass) {
		p.registry = r
	}
}

// Aggregate sums points per player across events in the order given and ranks
// the result. Players with no points are never ranked. Ties are broken by
// name so repeated runs over the same input produce the same order.
func (a *Aggregator) Aggregate(events []EventInput, opts ...Option) (model.Leaderboard, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	var p pass
	for _, opt := range opts {
		opt(&p)
	}

	totals := make(map[string]*model.PlayerAggregate)
	for _, ev := range events {
		for _, r := range ev.Results {
			pts := a.schedule.Points(ev.Event.Tier, r.Position)
			agg, ok := totals[r.PlayerName]
			if !ok {
				agg = &model.PlayerAggregate{Name: r.PlayerName}
				totals[r.PlayerName] = agg
			}
			agg.TotalPoints += pts
			agg.PerEventPoints = append(agg.PerEventPoints, model.EventPoints{EventName: ev.Event.Name, Points: pts})
		}
	}

	board := make(model.Leaderboard, 0, len(totals))
	for _, agg := range totals {
		if agg.TotalPoints == 0 {
			continue
		}
		if p.registry != nil && !p.registry.Contains(agg.Name) {
			continue
		}
		board = append(board, *agg)
	}

	slices.SortFunc(board, func(x, y model.PlayerAggregate) int {
		if c := cmp.Compare(y.TotalPoints, x.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board, nil
}
