package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for point top-ups.
type Metrics struct {
	ChargesTotal   *prometheus.CounterVec
	ChargeFailures *prometheus.CounterVec
	PointsCredited prometheus.Counter
	WonCharged     prometheus.Counter
}

// New registers points metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ChargesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_points_charges_total",
			Help: "Total number of completed point top-ups",
		}, []string{"method"}),
		ChargeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toonpass_points_charge_failures_total",
			Help: "Total number of top-ups rejected by the payment method",
		}, []string{"method"}),
		PointsCredited: f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_points_credited_total",
			Help: "Total points credited to wallets by top-ups",
		}),
		WonCharged: f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_points_won_charged_total",
			Help: "Total won charged for top-ups",
		}),
	}
}

func (m *Metrics) ObserveCharge(method string, amountWon, points int64) {
	m.ChargesTotal.WithLabelValues(method).Inc()
	m.WonCharged.Add(float64(amountWon))
	m.PointsCredited.Add(float64(points))
}

func (m *Metrics) IncrementChargeFailure(method string) {
	m.ChargeFailures.WithLabelValues(method).Inc()
}
