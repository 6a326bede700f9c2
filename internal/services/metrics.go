// Package services – Prometheus collectors for the selection core.
//
// Label sets are small and fixed (outcome names), so cardinality stays bounded.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// dailySelections counts daily quote selections by outcome:
	// selected, fallback (anti-repeat window relaxed), conflict, error.
	dailySelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoticon_daily_quote_selections_total",
			Help: "Daily quote selections by outcome.",
		},
		[]string{"outcome"},
	)

	// trendingComputations counts trending recomputations by result (ok, error).
	trendingComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoticon_trending_computations_total",
			Help: "Trending list recomputations by result.",
		},
		[]string{"result"},
	)

	// trendingReads counts trending reads by cache outcome (hit, miss, stale).
	trendingReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoticon_trending_reads_total",
			Help: "Trending list reads by cache outcome.",
		},
		[]string{"cache"},
	)

	// trendingDuration records how long a recomputation takes.
	trendingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quoticon_trending_compute_duration_seconds",
			Help:    "Duration of trending recomputations in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(dailySelections, trendingComputations, trendingReads, trendingDuration)
}
