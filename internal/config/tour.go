package config

import (
	"strings"
	"time"

	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/scoring"
	"github.com/shopspring/decimal"
)

// DateLayout is the configured event date format.
const DateLayout = "2006-01-02"

// Tour is the validated tour definition handed to the pipeline.
type Tour struct {
	Name         string
	Season       int
	Events       []model.EventDefinition
	Schedule     scoring.Schedule
	EntryFee     decimal.Decimal
	PayoutShares []decimal.Decimal
}

// BuildTour validates the calendar, points tables and money settings.
// Any problem is a *ConfigurationError.
func (c *Config) BuildTour() (*Tour, error) {
	points := make(map[model.Tier][]int, len(c.Points))
	for key, seq := range c.Points {
		tier, err := model.ParseTier(key)
		if err != nil {
			return nil, invalid("points", "%v", err)
		}
		points[tier] = seq
	}
	schedule, err := scoring.NewSchedule(points)
	if err != nil {
		return nil, invalid("points", "%v", err)
	}

	if len(c.Events) == 0 {
		return nil, invalid("events", "at least one event is required")
	}
	seen := make(map[string]bool, len(c.Events))
	events := make([]model.EventDefinition, 0, len(c.Events))
	for i, ev := range c.Events {
		name := strings.TrimSpace(ev.Name)
		if name == "" {
			return nil, invalid("events", "event %d has no name", i)
		}
		if seen[name] {
			return nil, invalid("events", "duplicate event %q", name)
		}
		seen[name] = true

		tier, err := model.ParseTier(ev.Tier)
		if err != nil {
			return nil, invalid("events", "event %q: %v", name, err)
		}
		if !schedule.Has(tier) {
			return nil, invalid("events", "event %q: tier %s has no points table", name, tier)
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(ev.Date))
		if err != nil {
			return nil, invalid("events", "event %q: date %q is not YYYY-MM-DD", name, ev.Date)
		}
		events = append(events, model.EventDefinition{Name: name, Tier: tier, Date: date})
	}

	fee, err := decimal.NewFromString(strings.TrimSpace(c.EntryFee))
	if err != nil || fee.IsNegative() {
		return nil, invalid("entry_fee", "%q is not a non-negative amount", c.EntryFee)
	}

	shares := make([]decimal.Decimal, 0, len(c.PayoutShares))
	total := decimal.Zero
	for _, s := range c.PayoutShares {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil || d.IsNegative() {
			return nil, invalid("payout_shares", "%q is not a non-negative fraction", s)
		}
		shares = append(shares, d)
		total = total.Add(d)
	}
	if total.GreaterThan(decimal.NewFromInt(1)) {
		return nil, invalid("payout_shares", "shares add up to %s, more than the pool", total)
	}

	return &Tour{
		Name:         c.TourName,
		Season:       c.Season,
		Events:       events,
		Schedule:     schedule,
		EntryFee:     fee,
		PayoutShares: shares,
	}, nil
}
