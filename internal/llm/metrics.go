package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "founderflow_generation_attempts_total",
		Help: "Total generation attempts by model",
	}, []string{"model"})

	generationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "founderflow_generation_model_fallbacks_total",
		Help: "Times a model was abandoned for the next one in the priority list",
	}, []string{"model"})

	generationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "founderflow_generation_failures_total",
		Help: "Generation calls that failed after exhausting all models",
	})
)
