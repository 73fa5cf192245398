// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/midex/tourboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Health states reported in JSON.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
	HealthPending  = "pending"
)

// HealthStatus is the JSON body of /healthz.
type HealthStatus struct {
	Status            string   `json:"status"`
	Computed          bool     `json:"computed"`
	UnavailableEvents []string `json:"unavailable_events,omitempty"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	stats    StatsProvider
	gatherer prometheus.Gatherer
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithGatherer serves metrics from g instead of the process registry.
func WithGatherer(g prometheus.Gatherer) HealthOption {
	return func(h *HealthHandler) {
		if g != nil {
			h.gatherer = g
		}
	}
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(stats StatsProvider, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{stats: stats, gatherer: metrics.GetRegistry()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleHealth handles GET /healthz requests.
// A request accepting application/json gets the pipeline status; anything
// else gets Prometheus metrics.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if h.stats != nil && strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, h.status())
		return
	}
	promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

func (h *HealthHandler) status() HealthStatus {
	st := h.stats.Stats()
	hs := HealthStatus{Status: HealthPending, Computed: st.Computed, UnavailableEvents: st.UnavailableEvents}
	switch {
	case !st.Computed:
	case st.UnavailableCount > 0:
		hs.Status = HealthDegraded
	default:
		hs.Status = HealthOK
	}
	return hs
}
