package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeFound   = "found"
	outcomeNoPath  = "no_path"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics search metrics of the route service
type Metrics struct {
	// SearchTotal tracks the number of route requests by outcome
	SearchTotal *prometheus.CounterVec
	// SearchExpandedNodes tracks the number of nodes expanded by single search
	SearchExpandedNodes prometheus.Histogram
	// SearchDuration tracks search wall-clock time
	SearchDuration prometheus.Histogram
}

// NewMetrics creates metrics and registers them with given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		SearchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osmroute_search_total",
				Help: "Total number of route searches processed",
			},
			[]string{"outcome"},
		),
		SearchExpandedNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "osmroute_search_expanded_nodes",
				Help:    "Number of nodes expanded by single A* search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "osmroute_search_duration_seconds",
				Help:    "Duration of single A* search",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(metrics.SearchTotal)
	reg.MustRegister(metrics.SearchExpandedNodes)
	reg.MustRegister(metrics.SearchDuration)
	return metrics
}

func (metrics *Metrics) observeSearch(outcome string, expanded int, duration time.Duration) {
	if metrics == nil {
		return
	}
	metrics.SearchTotal.WithLabelValues(outcome).Inc()
	if outcome == outcomeFound || outcome == outcomeNoPath {
		metrics.SearchExpandedNodes.Observe(float64(expanded))
		metrics.SearchDuration.Observe(duration.Seconds())
	}
}

func (metrics *Metrics) observeRejected(outcome string) {
	if metrics == nil {
		return
	}
	metrics.SearchTotal.WithLabelValues(outcome).Inc()
}
