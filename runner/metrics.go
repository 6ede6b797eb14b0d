package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scopemetrics_analysis_runs_total",
		Help: "Analysis runs by level, analysis name and outcome.",
	}, []string{"level", "analysis", "outcome"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scopemetrics_analysis_duration_seconds",
		Help:    "Wall-clock duration of analysis runs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"level", "analysis"})
)
