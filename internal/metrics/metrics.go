// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package metrics registers the Prometheus instrumentation for the
// scoring pipeline, the result cache, the predictor adapter and the
// HTTP surface. Everything is registered via promauto at package
// initialization and served from /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scoring pipeline metrics
	ScoreRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_requests_total",
			Help: "Total score evaluations by mode and cache outcome",
		},
		[]string{"mode", "cache"}, // mode: "single"|"batch", cache: "hit"|"miss"
	)

	ScoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "score_latency_seconds",
			Help:    "Evaluation latency by pipeline stage",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"stage"}, // "total", "fuzzy", "ann"
	)

	FuzzyScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fuzzy_score_distribution",
			Help:    "Distribution of fuzzy inference scores",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	HybridScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hybrid_score_distribution",
			Help:    "Distribution of combined hybrid scores",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	StrategyUsage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_usage_total",
			Help: "Evaluations per combination strategy",
		},
		[]string{"strategy"},
	)

	// Result cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total result cache misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_evictions_total",
			Help: "Total capacity evictions from the result cache",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of cached result bundles",
		},
	)

	// Predictor adapter metrics
	PredictorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_requests_total",
			Help: "Predictor calls by outcome",
		},
		[]string{"outcome"}, // "ok", "unavailable"
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records metrics for one finished API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
