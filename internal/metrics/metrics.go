// Package metrics holds the Prometheus collectors shared by the resolver,
// the external providers and the HTTP layer. Collectors are registered on
// the default registry via promauto and served by promhttp at /metrics.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

const namespace = "lexikon"

// Provider call status labels.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusTimeout  = "timeout"
	StatusError    = "error"
)

var (
	// providerCallsTotal counts outbound calls to external lookup services.
	//
	// Labels:
	//   - provider: "freedict", "mymemory"
	//   - status: "success", "not_found", "timeout", "error"
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total number of external provider calls.",
		},
		[]string{"provider", "status"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Duration of external provider calls in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)

	// resolutionsTotal counts dictionary resolutions by final outcome.
	//
	// Labels:
	//   - outcome: a domain.Source value, "not_found" or "invalid"
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total dictionary resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method and status class.",
		},
		[]string{"method", "code"},
	)

	httpPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Total handler panics recovered by the HTTP layer.",
		},
	)
)

// ObserveProviderCall records one external provider call.
func ObserveProviderCall(provider string, err error, d time.Duration) {
	providerCallsTotal.WithLabelValues(provider, CallStatus(err)).Inc()
	providerCallDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// CallStatus maps a provider error to a low-cardinality status label.
func CallStatus(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, domain.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	default:
		return StatusError
	}
}

// RecordResolution counts a finished resolution.
func RecordResolution(outcome string) {
	resolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts a served HTTP request. Status codes are bucketed
// into classes ("2xx", "4xx", ...) to keep the label set small.
func RecordHTTPRequest(method string, status int) {
	httpRequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
}

// RecordPanic counts a recovered handler panic.
func RecordPanic() {
	httpPanicsTotal.Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
