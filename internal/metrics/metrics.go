// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/tourvisto/backend/internal/normalize"
)

// Collectors groups every collector the API registers. Constructing them
// per registry, rather than via promauto globals, keeps tests isolated.
type Collectors struct {
	DecodeFailures *prometheus.CounterVec
	CacheResults   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		DecodeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tourvisto_trip_decode_failures_total",
				Help: "Trip records dropped because their detail blob could not be decoded.",
			},
			[]string{"kind"},
		),
		CacheResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tourvisto_stats_cache_requests_total",
				Help: "Dashboard statistics cache lookups by result.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(c.DecodeFailures, c.CacheResults)
	return c
}

// DecodeFailureReporter counts dropped records by failure kind.
type DecodeFailureReporter struct {
	counter *prometheus.CounterVec
}

// NewDecodeFailureReporter returns a normalize.Reporter backed by c.
func NewDecodeFailureReporter(c *Collectors) DecodeFailureReporter {
	return DecodeFailureReporter{counter: c.DecodeFailures}
}

func (r DecodeFailureReporter) Report(f normalize.DecodeFailure) {
	r.counter.WithLabelValues(string(f.Kind)).Inc()
}

// CacheHit and CacheMiss record stats cache lookups.
func (c *Collectors) CacheHit()  { c.CacheResults.WithLabelValues("hit").Inc() }
func (c *Collectors) CacheMiss() { c.CacheResults.WithLabelValues("miss").Inc() }
