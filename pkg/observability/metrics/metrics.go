// Package metrics defines the Prometheus instrumentation for the analysis
// engine. All metrics are registered with the default registry via promauto;
// the caller exposes them through promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_analysis_duration_seconds",
			Help:    "Time spent analyzing a single content item",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	analysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_analysis_total",
			Help: "Number of analyzed content items by outcome (record, empty, skipped)",
		},
		[]string{"outcome"},
	)

	indicatorTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_indicator_total",
			Help: "Number of emitted indicators by family and category",
		},
		[]string{"family", "category"},
	)

	sentimentDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_sentiment_degraded_total",
			Help: "Number of analyses that ran without a sentiment reading",
		},
	)

	riskLevelTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_risk_level_total",
			Help: "Number of computed risk scores by level (low, medium, high)",
		},
		[]string{"level"},
	)

	rageScrollGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_rage_scroll_active",
			Help: "Whether the scroll profiler currently classifies behavior as rage scrolling (0 or 1)",
		},
	)

	scrollSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_scroll_samples_total",
			Help: "Number of scroll samples recorded",
		},
	)
)

// RecordAnalysis records one analyzed item with its latency and outcome.
func RecordAnalysis(seconds float64, outcome string) {
	analysisDuration.Observe(seconds)
	analysisTotal.WithLabelValues(outcome).Inc()
}

// RecordIndicator records one emitted indicator.
func RecordIndicator(family, category string) {
	indicatorTotal.WithLabelValues(family, category).Inc()
}

// RecordSentimentDegraded records an analysis that proceeded without the
// sentiment collaborator.
func RecordSentimentDegraded() {
	sentimentDegraded.Inc()
}

// RecordRiskLevel records a computed risk score bucketed by level.
func RecordRiskLevel(level string) {
	riskLevelTotal.WithLabelValues(level).Inc()
}

// SetRageScrollActive updates the rage-scroll gauge.
func SetRageScrollActive(active bool) {
	if active {
		rageScrollGauge.Set(1)
	} else {
		rageScrollGauge.Set(0)
	}
}

// RecordScrollSample records one accepted scroll sample.
func RecordScrollSample() {
	scrollSamplesTotal.Inc()
}
