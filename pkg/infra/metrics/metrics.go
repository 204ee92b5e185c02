// Package metrics provides Prometheus instrumentation for the moderation
// gateway: request outcomes, fail-open causes, truncation and processing
// latency.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts moderation requests by final verdict:
	// "allowed" or "blocked".
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modfence_requests_total",
		Help: "Total number of moderation requests by verdict",
	}, []string{"verdict"})

	// BlockedTotal counts blocked messages by content kind.
	BlockedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modfence_blocked_total",
		Help: "Total number of blocked messages by content kind",
	}, []string{"kind"})

	// BackendErrorsTotal counts classification backend failures that were
	// converted to fail-open verdicts.
	BackendErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "modfence_backend_errors_total",
		Help: "Total number of classification backend failures",
	})

	// DownloadErrorsTotal counts failed image/attachment downloads.
	DownloadErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "modfence_download_errors_total",
		Help: "Total number of failed resource downloads",
	})

	// TruncationsTotal counts texts cut to the backend input limit.
	TruncationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "modfence_truncations_total",
		Help: "Total number of texts truncated before classification",
	})

	// CacheHitsTotal counts classification results served from cache.
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modfence_classification_cache_hits_total",
		Help: "Total number of classification cache hits by content kind",
	}, []string{"kind"})

	// ProcessingDuration records end-to-end moderation latency in seconds.
	ProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "modfence_processing_duration_seconds",
		Help:    "Moderation pipeline latency in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	// HTTPRequestDuration records webhook request latency in seconds.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modfence_http_request_duration_seconds",
		Help:    "Webhook HTTP request latency in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"path"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		BlockedTotal,
		BackendErrorsTotal,
		DownloadErrorsTotal,
		TruncationsTotal,
		CacheHitsTotal,
		ProcessingDuration,
		HTTPRequestDuration,
	)
}
