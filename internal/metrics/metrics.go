package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	VitalBloodPressure = "blood_pressure"
	VitalTemperature   = "temperature"

	OutcomeNormal    = "normal"
	OutcomeDeviation = "deviation"
)

var (
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phm_checks_total",
			Help: "Total number of vital sign checks",
		},
		[]string{"vital", "outcome"},
	)

	AlertsSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phm_alerts_sent_total",
			Help: "Total number of alerts handed to the alert sender",
		},
	)

	AlertFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phm_alert_failures_total",
			Help: "Total number of alerts the alert sender failed to accept",
		},
	)

	ReadingsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phm_readings_consumed_total",
			Help: "Total number of readings consumed by the checker",
		},
		[]string{"status"}, // status: checked, skipped
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phm_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)
