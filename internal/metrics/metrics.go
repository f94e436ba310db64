package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObserveCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercore_observe_calls_total",
			Help: "Total Observe() calls, by outcome",
		},
		[]string{"station", "outcome"},
	)

	ObserveLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weathercore_observe_latency_seconds",
			Help:    "Observe() call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"station"},
	)

	ForecastCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercore_forecast_calls_total",
			Help: "Total Forecast() calls, by outcome",
		},
		[]string{"station", "outcome"},
	)

	ForecastLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weathercore_forecast_latency_seconds",
			Help:    "Forecast() call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"station", "horizon_hours"},
	)

	WarningsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercore_warnings_emitted_total",
			Help: "Warnings attached to a successful Observe() call, by kind",
		},
		[]string{"station", "kind"},
	)

	ConditionEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercore_condition_emitted_total",
			Help: "Condition emitted by Observe(), by value",
		},
		[]string{"station", "condition"},
	)
)
