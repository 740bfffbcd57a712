package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for entitlement operations.
type Metrics struct {
	GrantsTotal        *prometheus.CounterVec
	GrantsDenied       *prometheus.CounterVec
	ConversionsTotal   prometheus.Counter
	PointsSpent        *prometheus.CounterVec
	AccessChecks       *prometheus.CounterVec
	GrantLatency       prometheus.Histogram
	ReaderLockWait     prometheus.Histogram
	ReaderLockAcquired prometheus.Counter
}

// New registers entitlement metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg. Tests pass a fresh registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GrantsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_entitlement_grants_total",
			Help: "Entitlements granted, labeled by kind and whether the reader was already entitled",
		}, []string{"kind", "outcome"}),
		GrantsDenied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_entitlement_grants_denied_total",
			Help: "Grants refused for insufficient points, labeled by kind",
		}, []string{"kind"}),
		ConversionsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_entitlement_rental_conversions_total",
			Help: "Active rentals converted into purchases",
		}),
		PointsSpent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_entitlement_points_spent_total",
			Help: "Points debited for entitlements, labeled by kind",
		}, []string{"kind"}),
		AccessChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_entitlement_access_checks_total",
			Help: "Access checks, labeled by result",
		}, []string{"result"}),
		GrantLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "toonpass_entitlement_grant_latency_seconds",
			Help:    "Latency of grant operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ReaderLockWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "toonpass_entitlement_reader_lock_wait_seconds",
			Help:    "Time spent waiting for the per-reader grant lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		ReaderLockAcquired: f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_entitlement_reader_lock_acquisitions_total",
			Help: "Total number of per-reader lock acquisitions",
		}),
	}
}

func (m *Metrics) IncrementGranted(kind string, alreadyEntitled bool) {
	outcome := "charged"
	if alreadyEntitled {
		outcome = "already_entitled"
	}
	m.GrantsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncrementDenied(kind string) {
	m.GrantsDenied.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementConversions() {
	m.ConversionsTotal.Inc()
}

func (m *Metrics) AddPointsSpent(kind string, points int64) {
	if points > 0 {
		m.PointsSpent.WithLabelValues(kind).Add(float64(points))
	}
}

func (m *Metrics) IncrementAccessCheck(allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	m.AccessChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveGrantLatency(seconds float64) {
	m.GrantLatency.Observe(seconds)
}

func (m *Metrics) ObserveLockWait(seconds float64) {
	m.ReaderLockWait.Observe(seconds)
	m.ReaderLockAcquired.Inc()
}
