// Package eligibility holds the tour entrants list and the entry money it implies.
//
// Names are matched exactly after trimming whitespace. No case folding or
// fuzzy matching is performed, so spelling must agree with the result sheets.
package eligibility

import (
	"strings"

	"github.com/midex/tourboard/internal/domain/types"
	"github.com/shopspring/decimal"
)

// DefaultShares is the prize split: 50% / 35% / 15%.
var DefaultShares = []decimal.Decimal{
	decimal.RequireFromString("0.50"),
	decimal.RequireFromString("0.35"),
	decimal.RequireFromString("0.15"),
}

// Registry is the set of players entitled to be scored.
type Registry struct {
	names map[string]struct{}
	order []string

	// Pre-aggregated figures from the listing, when present.
	totalEntries *int
	totalPaid    *decimal.Decimal

	fee    decimal.Decimal
	shares []decimal.Decimal
}

// Option configures a Registry.
type Option func(*Registry)

// WithEntryFee sets the per-entrant fee used to derive the prize pool.
func WithEntryFee(fee decimal.Decimal) Option {
	return func(r *Registry) {
		if !fee.IsNegative() {
			r.fee = fee
		}
	}
}

// WithPayoutShares sets the prize split by finishing place.
func WithPayoutShares(shares []decimal.Decimal) Option {
	return func(r *Registry) {
		if len(shares) > 0 {
			r.shares = append([]decimal.Decimal(nil), shares...)
		}
	}
}

// New builds a registry from explicit names. Blank names are ignored and
// duplicates collapse.
func New(names []string, opts ...Option) *Registry {
	r := &Registry{
		names:  make(map[string]struct{}, len(names)),
		shares: DefaultShares,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, n := range names {
		r.add(n)
	}
	return r
}

func (r *Registry) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, dup := r.names[name]; dup {
		return
	}
	r.names[name] = struct{}{}
	r.order = append(r.order, name)
}

// Contains reports whether name is a registered entrant.
func (r *Registry) Contains(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[strings.TrimSpace(name)]
	return ok
}

// Names returns the distinct entrants in listing order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// EntryCount is the pre-aggregated total when the listing carries one,
// otherwise the number of distinct entrants.
func (r *Registry) EntryCount() int {
	if r.totalEntries != nil {
		return *r.totalEntries
	}
	return len(r.order)
}

// PrizePool is the pre-aggregated total paid when present, otherwise
// EntryCount times the entry fee.
func (r *Registry) PrizePool() decimal.Decimal {
	if r.totalPaid != nil {
		return *r.totalPaid
	}
	return r.fee.Mul(decimal.NewFromInt(int64(r.EntryCount())))
}

// Payouts splits the prize pool by place, rounded to pennies.
func (r *Registry) Payouts() []types.Payout {
	pool := r.PrizePool()
	out := make([]types.Payout, len(r.shares))
	for i, share := range r.shares {
		out[i] = types.Payout{Place: i + 1, Share: share, Amount: pool.Mul(share).Round(2)}
	}
	return out
}

// Metrics summarises entries and prize money for display.
func (r *Registry) Metrics() types.EntryMetrics {
	return types.EntryMetrics{
		EntryCount: r.EntryCount(),
		EntryFee:   r.fee,
		PrizePool:  r.PrizePool(),
		Payouts:    r.Payouts(),
	}
}
