package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	SubmissionsStored prometheus.Counter
	Notifications     *prometheus.CounterVec
	ProviderAttempts  *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		SubmissionsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "formbridge_submissions_stored_total",
			Help: "Contact-form submissions persisted.",
		}),
		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "formbridge_notifications_total",
			Help: "Notification outcomes by kind.",
		}, []string{"kind", "outcome"}),
		ProviderAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "formbridge_notification_provider_attempts_total",
			Help: "Per-provider delivery attempts.",
		}, []string{"provider", "outcome"}),
	}
}

// HTTPMetrics instruments inbound requests.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "formbridge_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formbridge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// StatusLabel renders an HTTP status code as a metric label value.
func StatusLabel(status int) string {
	return strconv.Itoa(status)
}
