package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchBranchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskintel",
			Name:      "search_branch_total",
			Help:      "Per-entity-type search branch outcomes",
		},
		[]string{"entity_type", "outcome"},
	)

	searchBranchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "riskintel",
			Name:      "search_branch_duration_seconds",
			Help:      "Per-entity-type search branch duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"entity_type"},
	)
)

func init() {
	prometheus.MustRegister(searchBranchTotal)
	prometheus.MustRegister(searchBranchDuration)
}

// ObserveSearchBranch records the outcome and duration of one entity-type
// sub-query. The caller cannot distinguish an empty tenant from a degraded
// backend in the response body; this is where that distinction surfaces.
func ObserveSearchBranch(entityType, outcome string, seconds float64) {
	searchBranchTotal.WithLabelValues(entityType, outcome).Inc()
	searchBranchDuration.WithLabelValues(entityType).Observe(seconds)
}
