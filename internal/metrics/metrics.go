// Package metrics holds the Prometheus collectors shared by the HTTP layer,
// the LLM client and the label analysis pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	defaultMetrics *Metrics
	metricsOnce    sync.Once
)

// Metrics holds the eatwise_* collectors.
type Metrics struct {
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec

	LLMCallsTotal *prometheus.CounterVec
	LLMDuration   prometheus.Histogram

	OCRRunsTotal  *prometheus.CounterVec
	FallbackTotal *prometheus.CounterVec
}

// Default returns the process-wide collectors, registering them on first use.
//
// Metrics:
//   - eatwise_http_requests_total{method,route,status}
//   - eatwise_http_request_duration_seconds{method,route}
//   - eatwise_llm_calls_total{outcome}
//   - eatwise_llm_call_duration_seconds
//   - eatwise_ocr_runs_total{outcome}
//   - eatwise_ai_fallbacks_total{kind}
func Default() *Metrics {
	metricsOnce.Do(func() {
		defaultMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "eatwise_http_requests_total",
					Help: "Total number of HTTP requests handled",
				},
				[]string{"method", "route", "status"},
			),
			HTTPDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "eatwise_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			LLMCallsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "eatwise_llm_calls_total",
					Help: "Total number of chat completion calls",
				},
				[]string{"outcome"}, // "ok", "error", "unavailable"
			),
			LLMDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "eatwise_llm_call_duration_seconds",
					Help:    "Duration of chat completion calls including retries",
					Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
				},
			),
			OCRRunsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "eatwise_ocr_runs_total",
					Help: "Total number of label OCR runs",
				},
				[]string{"outcome"}, // "ok", "empty", "error"
			),
			FallbackTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "eatwise_ai_fallbacks_total",
					Help: "Replies served from the demo fallback text",
				},
				[]string{"kind"}, // "ask", "analysis"
			),
		}
	})
	return defaultMetrics
}
