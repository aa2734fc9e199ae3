// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records Prometheus metrics for one dimensions-query run.
// Metrics live on a private registry; a CLI run exports them with
// WriteTextfile for pickup by a node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "dimensions_query"

// Metrics contains the counters and histograms for query submission and
// result analysis.
type Metrics struct {
	registry *prometheus.Registry

	// QueriesSubmitted counts DSL queries sent to the service, labeled by search target.
	QueriesSubmitted *prometheus.CounterVec

	// QueriesFailed counts submissions that returned a Go error, labeled by search target.
	QueriesFailed *prometheus.CounterVec

	// QueryDuration observes submission round-trip time in seconds.
	QueryDuration prometheus.Histogram

	// ResultsAvailable observes the total_count reported per query.
	ResultsAvailable prometheus.Histogram

	// ServerErrors counts error messages the service reported alongside results.
	ServerErrors prometheus.Counter

	// AggregationsRendered counts frequency tables produced, labeled by aggregation name.
	AggregationsRendered *prometheus.CounterVec
}

// New creates a Metrics instance registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		QueriesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "queries_submitted_total",
			Help:      "Total number of DSL queries submitted by search target",
		}, []string{"search"}),
		QueriesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "queries_failed_total",
			Help:      "Total number of DSL queries that failed by search target",
		}, []string{"search"}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of DSL query submissions in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		ResultsAvailable: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "results_available",
			Help:      "Total matching records reported per query",
			Buckets:   []float64{0, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ServerErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "server_errors_total",
			Help:      "Total number of error messages reported by the search service",
		}),
		AggregationsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "aggregations_rendered_total",
			Help:      "Total number of frequency tables rendered by aggregation",
		}, []string{"aggregation"}),
	}
}

// Registry returns the registry holding all metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
