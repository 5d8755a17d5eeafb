// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsTotal counts device reports.
	// Labels:
	//   - outcome: "accepted", "rejected"
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_reports_total",
			Help: "Total number of device occupancy reports",
		},
		[]string{"outcome"},
	)

	// TransitionsTotal counts detected slot transitions.
	// Labels:
	//   - state: "occupied", "available" (the new state)
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_slot_transitions_total",
			Help: "Total number of detected slot state transitions",
		},
		[]string{"state"},
	)

	// HistoryEvents reports the number of retained history events.
	HistoryEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parking_history_events",
		Help: "Transition events currently retained in the history log",
	})

	// DevicesTracked reports the number of devices with a snapshot.
	DevicesTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parking_devices_tracked",
		Help: "Devices with a known snapshot",
	})

	// LoginAttempts counts admin login attempts.
	// Labels:
	//   - outcome: "success", "failure", "throttled"
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_admin_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"outcome"},
	)

	// HTTPRequestDuration measures request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parking_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)

// StateLabel maps a slot occupied flag to its label value.
func StateLabel(occupied bool) string {
	if occupied {
		return "occupied"
	}
	return "available"
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
