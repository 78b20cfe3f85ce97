package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agendly_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agendly_bookings_created_total",
			Help: "Appointments successfully created.",
		},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agendly_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken.",
		},
	)

	AvailabilityRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agendly_availability_requests_total",
			Help: "Availability queries served.",
		},
	)

	AvailabilitySlots = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agendly_availability_slots",
			Help:    "Free slots returned per availability query.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)
