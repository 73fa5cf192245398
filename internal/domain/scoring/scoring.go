// Package scoring maps a finishing position to tour points per event tier.
package scoring

import (
	"errors"
	"fmt"

	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/types"
)

// ErrInvalidSchedule marks a points schedule that fails validation.
var ErrInvalidSchedule = errors.New("invalid points schedule")

// Schedule maps each tier to points by rank; index 0 is first place.
// Build it with NewSchedule so the invariants hold.
type Schedule struct {
	points map[model.Tier][]int
}

// NewSchedule validates and copies the per-tier payouts. Every sequence must
// be non-empty, non-negative and non-increasing.
func NewSchedule(points map[model.Tier][]int) (Schedule, error) {
	if len(points) == 0 {
		return Schedule{}, fmt.Errorf("%w: no tiers", ErrInvalidSchedule)
	}
	s := Schedule{points: make(map[model.Tier][]int, len(points))}
	for tier, seq := range points {
		if tier == model.TierUnknown {
			return Schedule{}, fmt.Errorf("%w: unknown tier", ErrInvalidSchedule)
		}
		if len(seq) == 0 {
			return Schedule{}, fmt.Errorf("%w: tier %s has no places", ErrInvalidSchedule, tier)
		}
		for i, p := range seq {
			if p < 0 {
				return Schedule{}, fmt.Errorf("%w: tier %s place %d is negative", ErrInvalidSchedule, tier, i+1)
			}
			if i > 0 && p > seq[i-1] {
				return Schedule{}, fmt.Errorf("%w: tier %s place %d pays more than place %d", ErrInvalidSchedule, tier, i+1, i)
			}
		}
		s.points[tier] = append([]int(nil), seq...)
	}
	return s, nil
}

// Points returns the award for rank in tier. Ranks past the end of the
// schedule and unknown tiers award zero.
func (s Schedule) Points(tier model.Tier, rank int) int {
	seq := s.points[tier]
	if rank < 1 || rank > len(seq) {
		return 0
	}
	return seq[rank-1]
}

// Has reports whether tier has a schedule.
func (s Schedule) Has(tier model.Tier) bool {
	_, ok := s.points[tier]
	return ok
}

// Places returns the number of paying places for tier.
func (s Schedule) Places(tier model.Tier) int {
	return len(s.points[tier])
}

// Table renders the schedule for display: one row per place up to the
// longest tier, shorter tiers padded with zeros.
func (s Schedule) Table() types.PointsTable {
	var (
		tiers  []model.Tier
		labels []string
		places int
	)
	for _, t := range model.Tiers {
		if !s.Has(t) {
			continue
		}
		tiers = append(tiers, t)
		labels = append(labels, t.Label())
		places = max(places, s.Places(t))
	}

	rows := make([]types.PointsRow, places)
	for i := range rows {
		row := types.PointsRow{Place: i + 1, Points: make([]int, len(tiers))}
		for j, t := range tiers {
			row.Points[j] = s.Points(t, i+1)
		}
		rows[i] = row
	}
	return types.PointsTable{Tiers: labels, Rows: rows}
}
