// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CorporationChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corporation_checks_total",
			Help: "Settled corporation number checks by outcome",
		},
		[]string{"outcome"},
	)

	CorporationCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "corporation_check_duration_seconds",
			Help: "Duration of debounced corporation number checks in seconds",
		},
		[]string{"outcome"},
	)

	CorporationChecksDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corporation_checks_discarded_total",
			Help: "Scheduled or in-flight checks dropped because the value changed or the field closed",
		},
		[]string{"reason"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "onboarding_api_request_duration_seconds",
			Help: "Duration of onboarding backend requests in seconds",
		},
		[]string{"endpoint", "status"},
	)

	StubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stub_api_requests_total",
			Help: "Requests served by the stub backend",
		},
		[]string{"route", "status"},
	)
)
