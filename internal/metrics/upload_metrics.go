package metrics

import (
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UploadMetrics interface for avatar upload metrics
type UploadMetrics interface {
	IncAvatarUploaded()
}

type uploadMetrics struct {
	log             *logger.Logger
	avatarsUploaded prometheus.Counter
}

// NewUploadMetrics creates new upload metrics
func NewUploadMetrics(registry *prometheus.Registry, log *logger.Logger) UploadMetrics {
	avatarsUploaded := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "avatars_uploaded_total",
			Help: "The total number of successful avatar uploads",
		},
	)

	return &uploadMetrics{
		log:             log,
		avatarsUploaded: avatarsUploaded,
	}
}

// IncAvatarUploaded increments the successful uploads counter
func (m *uploadMetrics) IncAvatarUploaded() {
	m.avatarsUploaded.Inc()
}
