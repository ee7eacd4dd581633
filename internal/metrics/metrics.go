// Package metrics defines the Prometheus collectors of gridpath.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values.
const (
	ResultFound   = "found"
	ResultNoPath  = "no_path"
	ResultInvalid = "invalid"
	ResultLimit   = "iteration_limit"

	VerdictOK       = "ok"
	VerdictMismatch = "mismatch"
	VerdictError    = "error"

	LookupHit  = "hit"
	LookupMiss = "miss"
)

var (
	// SearchTotal counts searches by outcome.
	SearchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_search_total",
		Help: "Total path searches by result",
	}, []string{"result"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_duration_seconds",
		Help:    "Path search duration",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1us to ~260ms
	})

	SearchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_iterations",
		Help:    "Expansion rounds per search",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 1000},
	})

	SearchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_nodes",
		Help:    "Search nodes created per search",
		Buckets: []float64{1, 10, 25, 50, 100, 250, 1000, 10000},
	})

	OracleCases = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_oracle_cases_total",
		Help: "Oracle cases by verdict",
	}, []string{"verdict"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_cache_lookups_total",
		Help: "Path length cache lookups by result",
	}, []string{"result"})
)

// ObserveSearch records one finished search.
func ObserveSearch(result string, d time.Duration, iterations, nodes int) {
	SearchTotal.WithLabelValues(result).Inc()
	SearchDuration.Observe(d.Seconds())
	if result == ResultInvalid {
		return
	}
	SearchIterations.Observe(float64(iterations))
	SearchNodes.Observe(float64(nodes))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
