package lib

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelhub",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelhub",
			Name:      "auth_attempts_total",
			Help:      "Count of sign-in attempts by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	realtimeConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "travelhub",
			Name:      "realtime_connections",
			Help:      "Number of open realtime connections.",
		},
	)

	realtimeMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travelhub",
			Name:      "realtime_messages_total",
			Help:      "Count of realtime messages by type.",
		},
		[]string{"type"},
	)
)

// RegisterMetrics registers collectors with the default registry (idempotent).
func RegisterMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(httpRequests, authAttempts, realtimeConnections, realtimeMessages)
	})
}

func IncHTTPRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func IncAuthAttempt(method, outcome string) {
	authAttempts.WithLabelValues(method, outcome).Inc()
}

func AddRealtimeConnections(delta float64) {
	realtimeConnections.Add(delta)
}

func IncRealtimeMessage(kind string) {
	realtimeMessages.WithLabelValues(kind).Inc()
}
