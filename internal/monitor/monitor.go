// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package monitor aggregates score telemetry into rolling performance
// statistics. It consumes ScoreEvents from the event bus and never
// feeds anything back into scoring; dropping the monitor entirely
// would not change a single score.
package monitor

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/events"
)

// Config bounds the rolling windows.
type Config struct {
	// WindowSize is how many recent evaluations the rolling statistics
	// cover. Default: 1000.
	WindowSize int
}

// Summary is a point-in-time statistics snapshot.
type Summary struct {
	TotalRequests  uint64            `json:"total_requests"`
	CacheHits      uint64            `json:"cache_hits"`
	CacheMisses    uint64            `json:"cache_misses"`
	CacheHitRate   float64           `json:"cache_hit_rate"`
	AvgLatencyMS   float64           `json:"avg_latency_ms"`
	MinLatencyMS   float64           `json:"min_latency_ms"`
	MaxLatencyMS   float64           `json:"max_latency_ms"`
	P95LatencyMS   float64           `json:"p95_latency_ms"`
	P99LatencyMS   float64           `json:"p99_latency_ms"`
	AvgFuzzyScore  float64           `json:"avg_fuzzy_score"`
	AvgHybridScore float64           `json:"avg_hybrid_score"`
	StrategyCounts map[string]uint64 `json:"strategy_counts"`
	UptimeSeconds  float64           `json:"uptime_seconds"`
	RequestsPerSec float64           `json:"requests_per_sec"`
}

// Monitor keeps rolling windows of latencies and scores plus lifetime
// counters. Safe for concurrent use.
type Monitor struct {
	mu         sync.Mutex
	latencies  *ring
	fuzzy      *ring
	hybrid     *ring
	total      uint64
	hits       uint64
	misses     uint64
	strategies map[string]uint64
	started    time.Time

	logger zerolog.Logger
}

// New builds a monitor with the given window size.
func New(cfg Config, logger zerolog.Logger) *Monitor {
	window := cfg.WindowSize
	if window <= 0 {
		window = 1000
	}
	return &Monitor{
		latencies:  newRing(window),
		fuzzy:      newRing(window),
		hybrid:     newRing(window),
		strategies: make(map[string]uint64),
		started:    time.Now(),
		logger:     logger.With().Str("component", "performance-monitor").Logger(),
	}
}

// Record folds one evaluation into the statistics.
func (m *Monitor) Record(ev events.ScoreEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	if ev.CacheHit {
		m.hits++
	} else {
		m.misses++
	}
	m.strategies[ev.Strategy]++
	m.latencies.push(ev.ElapsedMS)
	m.fuzzy.push(ev.FuzzyScore)
	m.hybrid.push(ev.HybridScore)
}

// Summary snapshots the current statistics.
func (m *Monitor) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	lat := m.latencies.values()
	s := Summary{
		TotalRequests:  m.total,
		CacheHits:      m.hits,
		CacheMisses:    m.misses,
		AvgLatencyMS:   mean(lat),
		MinLatencyMS:   minOf(lat),
		MaxLatencyMS:   maxOf(lat),
		P95LatencyMS:   percentile(lat, 0.95),
		P99LatencyMS:   percentile(lat, 0.99),
		AvgFuzzyScore:  mean(m.fuzzy.values()),
		AvgHybridScore: mean(m.hybrid.values()),
		StrategyCounts: make(map[string]uint64, len(m.strategies)),
	}
	for k, v := range m.strategies {
		s.StrategyCounts[k] = v
	}
	if total := m.hits + m.misses; total > 0 {
		s.CacheHitRate = float64(m.hits) / float64(total)
	}
	s.UptimeSeconds = time.Since(m.started).Seconds()
	if s.UptimeSeconds > 0 {
		s.RequestsPerSec = float64(m.total) / s.UptimeSeconds
	}
	return s
}

// Reset clears all windows and counters. The uptime epoch restarts.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies.reset()
	m.fuzzy.reset()
	m.hybrid.reset()
	m.total, m.hits, m.misses = 0, 0, 0
	m.strategies = make(map[string]uint64)
	m.started = time.Now()
}

// Run subscribes to the score topic and folds events until the context
// ends. It implements suture.Service via the supervisor wrapper.
func (m *Monitor) Run(ctx context.Context, sub message.Subscriber) error {
	msgs, err := sub.Subscribe(ctx, events.TopicScoreComputed)
	if err != nil {
		return err
	}
	for msg := range msgs {
		var ev events.ScoreEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			m.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed score event")
			msg.Ack()
			continue
		}
		m.Record(ev)
		msg.Ack()
	}
	return ctx.Err()
}

// ring is a fixed-size overwrite-oldest float window.
type ring struct {
	buf    []float64
	next   int
	filled int
}

func newRing(size int) *ring {
	return &ring{buf: make([]float64, size)}
}

func (r *ring) push(v float64) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.filled < len(r.buf) {
		r.filled++
	}
}

func (r *ring) values() []float64 {
	out := make([]float64, r.filled)
	copy(out, r.buf[:r.filled])
	return out
}

func (r *ring) reset() {
	r.next, r.filled = 0, 0
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func minOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := math.MaxFloat64
	for _, v := range vs {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := -math.MaxFloat64
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

// percentile uses the nearest-rank method on a sorted copy.
func percentile(vs []float64, p float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
