package tabular

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/midex/tourboard/pkg/metrics"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// RateLimited bounds how fast the wrapped source is called.
type RateLimited struct {
	src     Source
	limiter *rate.Limiter
}

// NewRateLimited wraps src with a token bucket of perSecond and burst.
// A non-positive perSecond disables limiting.
func NewRateLimited(src Source, perSecond float64, burst int) *RateLimited {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{src: src, limiter: rate.NewLimiter(limit, burst)}
}

// Table implements Source.
func (r *RateLimited) Table(ctx context.Context, name string) ([][]string, error) {
	start := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %w", ErrSourceUnavailable, err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		metrics.RecordThrottleWait(float64(waited.Milliseconds()))
	}
	return r.src.Table(ctx, name)
}

type cacheEntry struct {
	rows    [][]string
	expires time.Time
}

// DefaultSharedFetchTimeout bounds a fetch shared by concurrent cache misses.
const DefaultSharedFetchTimeout = 30 * time.Second

// CacheStats is a point-in-time view of cache activity.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Cached serves tables from memory for ttl after a successful fetch.
// Concurrent misses for the same table share one fetch, which runs detached
// from any single caller's cancellation and is bounded by its own timeout;
// each caller still stops waiting when its own context ends.
// Failures are not cached.
type Cached struct {
	src     Source
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// CacheOption configures a Cached source.
type CacheOption func(*Cached)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSharedFetchTimeout bounds the detached fetch run on a miss.
func WithSharedFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cached) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCached wraps src with a ttl cache.
func NewCached(src Source, ttl time.Duration, opts ...CacheOption) *Cached {
	c := &Cached{
		src:     src,
		ttl:     ttl,
		timeout: DefaultSharedFetchTimeout,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table implements Source.
func (c *Cached) Table(ctx context.Context, name string) ([][]string, error) {
	c.mu.Lock()
	e, ok := c.entries[name]
	c.mu.Unlock()
	if ok && c.now().Before(e.expires) {
		c.hits.Add(1)
		metrics.RecordCacheHit()
		return copyRows(e.rows), nil
	}
	c.misses.Add(1)
	metrics.RecordCacheMiss()

	ch := c.group.DoChan(name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		rows, err := c.src.Table(fetchCtx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[name] = cacheEntry{rows: rows, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return rows, nil
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyRows(res.Val.([][]string)), nil
	}
}

// Stats returns hit and miss counts and the number of cached tables.
func (c *Cached) Stats() CacheStats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: n}
}

// Invalidate drops every cached table.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Instrumented records the outcome of every fetch under kind.
type Instrumented struct {
	src  Source
	kind Kind
}

// NewInstrumented wraps src with fetch metrics.
func NewInstrumented(src Source, kind Kind) *Instrumented {
	return &Instrumented{src: src, kind: kind}
}

// Table implements Source.
func (i *Instrumented) Table(ctx context.Context, name string) ([][]string, error) {
	rows, err := i.src.Table(ctx, name)
	result := "ok"
	switch {
	case errors.Is(err, ErrTableNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	metrics.RecordSourceFetch(string(i.kind), result)
	return rows, err
}
