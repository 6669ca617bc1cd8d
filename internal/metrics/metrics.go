// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baba_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "baba_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baba_classifications_total",
			Help: "Routed turns by intent and classification source",
		},
		[]string{"intent", "source"},
	)

	TurnErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baba_turn_errors_total",
			Help: "Turns that ended with a user-visible error, by flow",
		},
		[]string{"flow"},
	)

	QuizStates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baba_quiz_states_total",
			Help: "Quiz sub-router state selections",
		},
		[]string{"state"},
	)

	QuizAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baba_quiz_answers_total",
			Help: "Checked quiz answers by correctness",
		},
		[]string{"correct"},
	)

	ActiveTurns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "baba_active_turns",
			Help: "Number of turns currently being processed",
		},
	)
)
