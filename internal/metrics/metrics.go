package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rize_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rize_http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Analytics metrics
	AnalyticsQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rize_analytics_query_duration_seconds",
			Help:    "Monthly usage aggregation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	AnalyticsCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rize_analytics_cache_hits_total",
			Help: "Closed-month series served from the in-process cache",
		},
	)

	// Worker metrics
	StreakJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rize_streak_jobs_total",
			Help: "Streak recompute jobs by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AnalyticsQueryDuration,
		AnalyticsCacheHits,
		StreakJobsTotal,
	)
}
