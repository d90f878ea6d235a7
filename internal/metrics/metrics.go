// Package metrics exposes Prometheus counters for booking outcomes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking channels.
const (
	ChannelDashboard = "dashboard"
	ChannelVoice     = "voice"
)

// BookingMetrics counts booking attempts, rejections and availability lookups.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	rejectionsTotal   *prometheus.CounterVec
	availabilityTotal *prometheus.CounterVec
	validationLatency prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "bookings_total",
			Help:      "Booking attempts by channel and outcome",
		}, []string{"channel", "outcome"}),
		rejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "booking_rejections_total",
			Help:      "Booking validation rejections by reason",
		}, []string{"reason"}),
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "availability_queries_total",
			Help:      "Availability lookups by result",
		}, []string{"result"}),
		validationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barbershop",
			Name:      "booking_validation_seconds",
			Help:      "Time spent loading the snapshot and validating a booking",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.rejectionsTotal, m.availabilityTotal, m.validationLatency)
	return m
}

// ObserveBooking records a booking attempt. outcome is "created", "rescheduled", "rejected" or "error".
func (m *BookingMetrics) ObserveBooking(channel, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *BookingMetrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.rejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveAvailability records a lookup; result is "open", "full", "closed" or "error".
func (m *BookingMetrics) ObserveAvailability(result string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveValidation(seconds float64) {
	if m == nil {
		return
	}
	m.validationLatency.Observe(seconds)
}
