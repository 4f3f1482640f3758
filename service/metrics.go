package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genvo_generation_tasks_total",
			Help: "Total number of generation tasks by type and final status.",
		},
		[]string{"type", "status"},
	)

	versionsAppendedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genvo_versions_appended_total",
		Help: "Total number of versions appended to projects.",
	})

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genvo_generation_duration_seconds",
			Help:    "Time spent waiting on the video generation backend.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"type"},
	)
)
