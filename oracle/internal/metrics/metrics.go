package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargolens_oracle_events_total",
			Help: "Total number of processed logistics events",
		},
		[]string{"status"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cargolens_oracle_pipeline_duration_seconds",
			Help:    "End-to-end duration of the generate-sign-submit pipeline",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	// LLM metrics
	LLMRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cargolens_oracle_llm_request_duration_seconds",
			Help:    "Duration of report generation calls",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	LLMDegradedReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cargolens_oracle_llm_degraded_reports_total",
			Help: "Reports returned with confidence 0 because the model was unreachable",
		},
	)

	// Chain metrics
	ChainSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargolens_oracle_chain_submissions_total",
			Help: "Contract calls by result status",
		},
		[]string{"status"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargolens_oracle_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"key"},
	)
)
