// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RecommendationsServed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "card_recommendations_returned",
			Help:    "Number of cards in each ranked shortlist",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)

	CardsExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "card_recommendations_excluded_total",
			Help: "Catalog cards skipped because the user already holds them",
		},
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_catalog_cache_requests_total",
			Help: "Catalog cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	IntakeAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_answers_total",
			Help: "Intake answers by field and outcome (accepted, rejected)",
		},
		[]string{"field", "outcome"},
	)

	RephraseFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_rephrase_fallbacks_total",
			Help: "Rephrase calls that fell back to the original text",
		},
		[]string{"reason"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_notifications_total",
			Help: "Recommendation summaries by channel and status",
		},
		[]string{"channel", "status"},
	)
)
