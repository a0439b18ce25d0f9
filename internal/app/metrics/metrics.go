package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatcher-side counters.
var (
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_events_received_total",
		Help: "Storage events received by the dispatcher.",
	})

	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_jobs_submitted_total",
		Help: "Processing jobs submitted to the queue.",
	})

	EventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_events_skipped_total",
		Help: "Events ignored because the key is outside the upload prefix or a duplicate.",
	})

	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_events_rejected_total",
		Help: "Events rejected for malformed keys or missing metadata.",
	})
)

// Worker-side instruments.
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Wall time per pipeline stage.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	}, []string{"stage"})

	TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_tasks_total",
		Help: "Pipeline runs by terminal outcome.",
	}, []string{"outcome"})
)
