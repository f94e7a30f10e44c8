// Package metrics registers the prometheus collectors for segment selection
// and job execution.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SelectionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutout",
			Subsystem: "cutfinder",
			Name:      "selection_outcomes_total",
			Help:      "The total number of segment selections by winning method.",
		},
		[]string{"method"},
	)
	SelectionFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutout",
			Subsystem: "cutfinder",
			Name:      "selection_fallbacks_total",
			Help:      "The total number of fallbacks from the model path by reason.",
		},
		[]string{"reason"},
	)
	ParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cutout",
			Subsystem: "cutfinder",
			Name:      "response_parse_failures_total",
			Help:      "The total number of model responses with no recoverable JSON.",
		},
	)

	JobsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cutout",
			Subsystem: "jobs",
			Name:      "started_total",
			Help:      "The total number of jobs started.",
		},
	)
	JobsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutout",
			Subsystem: "jobs",
			Name:      "finished_total",
			Help:      "The total number of jobs finished by final status.",
		},
		[]string{"status"},
	)
	PhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cutout",
			Subsystem: "jobs",
			Name:      "phase_duration_seconds",
			Help:      "The duration of each job phase.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"phase"},
	)
)

func init() {
	prometheus.MustRegister(SelectionOutcomes)
	prometheus.MustRegister(SelectionFallbacks)
	prometheus.MustRegister(ParseFailures)
	prometheus.MustRegister(JobsStarted)
	prometheus.MustRegister(JobsFinished)
	prometheus.MustRegister(PhaseDuration)
}
