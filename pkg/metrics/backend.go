package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics records calls the storefront makes to the commerce backend.
type BackendMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewBackendMetrics registers the backend call metrics on the provided registerer.
func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	if reg == nil {
		return &BackendMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of commerce backend calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_failures_total",
		Help: "Commerce backend calls that returned a non-2xx status or failed in transport.",
	}, []string{"method", "route"})
	reg.MustRegister(duration, failures)
	return &BackendMetrics{
		duration: duration,
		failures: failures,
	}
}

// Observe records one backend call. A zero status means the request never got a response.
func (b *BackendMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.WithLabelValues(method, normalizeLabel(route), statusLabel(status)).Observe(elapsed.Seconds())
	if status < 200 || status > 299 {
		b.failures.WithLabelValues(method, normalizeLabel(route)).Inc()
	}
}

func statusLabel(status int) string {
	if status == 0 {
		return "transport_error"
	}
	return strconv.Itoa(status)
}

func normalizeLabel(route string) string {
	if route == "" {
		return "unknown"
	}
	return route
}
