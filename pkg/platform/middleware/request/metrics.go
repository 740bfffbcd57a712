package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the per-route HTTP collectors.
type Metrics struct {
	latency  *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toonpass_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
	}
}

func (m *Metrics) observe(method, route string, status int, seconds float64) {
	m.latency.WithLabelValues(method, route).Observe(seconds)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
