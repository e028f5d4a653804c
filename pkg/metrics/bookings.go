package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records counters for booking lifecycle activity.
type BookingMetrics struct {
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	settlements *prometheus.HistogramVec
}

// NewBookingMetrics registers booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_transitions_total",
		Help: "Applied booking status transitions.",
	}, []string{"from", "to"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_transition_rejections_total",
		Help: "Rejected booking status transitions.",
	}, []string{"from", "to"})
	settlements := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_settlement_amount",
		Help:    "Settled amounts per settlement kind.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"kind"})
	reg.MustRegister(transitions, rejections, settlements)
	return &BookingMetrics{
		transitions: transitions,
		rejections:  rejections,
		settlements: settlements,
	}
}

// IncTransition counts an applied transition.
func (b *BookingMetrics) IncTransition(from, to string) {
	if b == nil || b.transitions == nil {
		return
	}
	b.transitions.WithLabelValues(from, to).Inc()
}

// IncRejection counts a rejected transition attempt.
func (b *BookingMetrics) IncRejection(from, to string) {
	if b == nil || b.rejections == nil {
		return
	}
	b.rejections.WithLabelValues(from, to).Inc()
}

// ObserveSettlement records a settled amount for the given kind.
func (b *BookingMetrics) ObserveSettlement(kind string, amount float64) {
	if b == nil || b.settlements == nil {
		return
	}
	b.settlements.WithLabelValues(kind).Observe(amount)
}
