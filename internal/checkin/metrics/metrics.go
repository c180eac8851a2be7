package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the check-in subsystem.
type Metrics struct {
	ScansTotal         *prometheus.CounterVec
	Confirmations      prometheus.Counter
	IdempotentConfirms prometheus.Counter
	AdmissionDenials   prometheus.Counter
	AmbiguousSearches  prometheus.Counter
	NotFoundSearches   prometheus.Counter
	ConfirmWriteErrors prometheus.Counter
	ResolutionLatency  prometheus.Histogram
}

// New creates and registers all check-in metrics.
func New() *Metrics {
	return &Metrics{
		ScansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doorlist_scans_total",
			Help: "Total decoded scans, labeled by decode outcome",
		}, []string{"outcome"}),
		Confirmations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_confirmations_total",
			Help: "Total genuine check-in confirmations (store writes)",
		}),
		IdempotentConfirms: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_idempotent_confirmations_total",
			Help: "Confirmations short-circuited because the guest was already checked in",
		}),
		AdmissionDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_admission_denials_total",
			Help: "Confirmation attempts denied by the admission window",
		}),
		AmbiguousSearches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_ambiguous_searches_total",
			Help: "Name searches that returned more than one candidate",
		}),
		NotFoundSearches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_not_found_searches_total",
			Help: "Searches and scans that matched no guest",
		}),
		ConfirmWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorlist_confirm_write_errors_total",
			Help: "Check-in writes that failed and were surfaced as retryable",
		}),
		ResolutionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "doorlist_resolution_latency_seconds",
			Help:    "Latency of guest resolution in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
