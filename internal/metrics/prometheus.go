package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrorsTotal tracks classified failures per category, code, severity
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_errors_total",
			Help: "Total number of classified errors",
		},
		[]string{"category", "code", "severity"},
	)

	// EscalationsTotal tracks repeated-failure escalations
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_escalations_total",
			Help: "Total number of repeated-failure escalations",
		},
		[]string{"category", "severity"},
	)

	// AlertsTotal tracks alert-gate hits at the request boundaries
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_alerts_total",
			Help: "Total number of failures the alert gate surfaced",
		},
		[]string{"category", "severity"},
	)
)
