package metrics

import (
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DonationMetrics interface for donation metrics
type DonationMetrics interface {
	IncDonationApproved()
	IncDonationPending()
	IncDonationRejected()
	IncDonationFailed()
	ObserveDonationAmount(amount float64)
}

type donationMetrics struct {
	log             *logger.Logger
	donationsStatus *prometheus.CounterVec
	donationsAmount prometheus.Histogram
}

// NewDonationMetrics creates new donation metrics
func NewDonationMetrics(registry *prometheus.Registry, log *logger.Logger) DonationMetrics {
	donationsStatus := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "donations_status_total",
			Help: "The total number of donation attempts by outcome",
		},
		[]string{"status"},
	)

	donationsAmount := promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "donations_amount",
			Help:    "Approved donation amounts distribution",
			Buckets: prometheus.ExponentialBuckets(5, 4, 6), // 5, 20, 80, 320, 1280, 5120
		},
	)

	return &donationMetrics{
		log:             log,
		donationsStatus: donationsStatus,
		donationsAmount: donationsAmount,
	}
}

// IncDonationApproved increments the approved donations counter
func (m *donationMetrics) IncDonationApproved() {
	m.donationsStatus.WithLabelValues("approved").Inc()
}

// IncDonationPending increments the pending donations counter
func (m *donationMetrics) IncDonationPending() {
	m.donationsStatus.WithLabelValues("pending").Inc()
}

// IncDonationRejected increments the rejected donations counter
func (m *donationMetrics) IncDonationRejected() {
	m.donationsStatus.WithLabelValues("rejected").Inc()
}

// IncDonationFailed increments the counter of attempts that never reached an outcome
func (m *donationMetrics) IncDonationFailed() {
	m.donationsStatus.WithLabelValues("failed").Inc()
}

// ObserveDonationAmount records an approved donation amount
func (m *donationMetrics) ObserveDonationAmount(amount float64) {
	m.donationsAmount.Observe(amount)
}
