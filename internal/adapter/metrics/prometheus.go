package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// Prometheus implements port.DeliveryMetrics with prometheus counters.
type Prometheus struct {
	attempts  *prometheus.CounterVec
	fallbacks prometheus.Counter
}

var _ port.DeliveryMetrics = (*Prometheus)(nil)

// NewPrometheus creates the delivery counters and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popup",
			Name:      "delivery_attempts_total",
			Help:      "Delivery attempts by trigger and terminal outcome.",
		}, []string{"trigger", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "popup",
			Name:      "zero_weight_fallbacks_total",
			Help:      "Selections that fell back to the first candidate because every weight was zero.",
		}),
	}
	reg.MustRegister(m.attempts, m.fallbacks)
	return m
}

// otherTrigger labels attempts for triggers outside the known kinds.
const otherTrigger = "other"

func (m *Prometheus) ObserveOutcome(trigger domain.Trigger, outcome domain.Outcome) {
	label := trigger.String()
	if !trigger.IsValid() {
		label = otherTrigger
	}
	m.attempts.WithLabelValues(label, string(outcome)).Inc()
}

func (m *Prometheus) ObserveZeroWeightFallback() {
	m.fallbacks.Inc()
}
