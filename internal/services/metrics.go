package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "founderflow_startups_created_total",
		Help: "Total number of startups created",
	})

	memoryEntriesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "founderflow_memory_entries_total",
		Help: "Memory log entries appended, by entry type",
	}, []string{"type"})

	generationsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "founderflow_generations_completed_total",
		Help: "Completed generation operations, by kind",
	}, []string{"kind"})

	generationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "founderflow_generation_duration_seconds",
		Help:    "End-to-end generation latency in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120}, // LLM calls dominate
	})
)
