// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package monitor

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/events"
)

func testMonitor(window int) *Monitor {
	return New(Config{WindowSize: window}, zerolog.Nop())
}

func annScore(v float64) *float64 { return &v }

func TestRecordAndSummary(t *testing.T) {
	m := testMonitor(100)

	m.Record(events.ScoreEvent{Strategy: "adaptive", FuzzyScore: 6, HybridScore: 7, ElapsedMS: 10, CacheHit: false, ANNScore: annScore(8)})
	m.Record(events.ScoreEvent{Strategy: "adaptive", FuzzyScore: 4, HybridScore: 5, ElapsedMS: 20, CacheHit: true})
	m.Record(events.ScoreEvent{Strategy: "ann_dominant", FuzzyScore: 8, HybridScore: 9, ElapsedMS: 30, CacheHit: false})

	s := m.Summary()
	if s.TotalRequests != 3 {
		t.Errorf("total = %d, want 3", s.TotalRequests)
	}
	if s.CacheHits != 1 || s.CacheMisses != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", s.CacheHits, s.CacheMisses)
	}
	if s.AvgLatencyMS != 20 {
		t.Errorf("avg latency = %v, want 20", s.AvgLatencyMS)
	}
	if s.MinLatencyMS != 10 || s.MaxLatencyMS != 30 {
		t.Errorf("min/max latency = %v/%v, want 10/30", s.MinLatencyMS, s.MaxLatencyMS)
	}
	if s.AvgFuzzyScore != 6 {
		t.Errorf("avg fuzzy = %v, want 6", s.AvgFuzzyScore)
	}
	if s.AvgHybridScore != 7 {
		t.Errorf("avg hybrid = %v, want 7", s.AvgHybridScore)
	}
	if s.StrategyCounts["adaptive"] != 2 || s.StrategyCounts["ann_dominant"] != 1 {
		t.Errorf("strategy counts = %v", s.StrategyCounts)
	}
}

func TestRollingWindowOverwrites(t *testing.T) {
	m := testMonitor(3)
	for i := 1; i <= 5; i++ {
		m.Record(events.ScoreEvent{ElapsedMS: float64(i * 10)})
	}
	s := m.Summary()
	// Window holds 30, 40, 50; lifetime total still counts all five.
	if s.TotalRequests != 5 {
		t.Errorf("total = %d, want 5", s.TotalRequests)
	}
	if s.MinLatencyMS != 30 || s.MaxLatencyMS != 50 {
		t.Errorf("window min/max = %v/%v, want 30/50", s.MinLatencyMS, s.MaxLatencyMS)
	}
}

func TestPercentiles(t *testing.T) {
	m := testMonitor(200)
	for i := 1; i <= 100; i++ {
		m.Record(events.ScoreEvent{ElapsedMS: float64(i)})
	}
	s := m.Summary()
	if s.P95LatencyMS != 95 {
		t.Errorf("p95 = %v, want 95", s.P95LatencyMS)
	}
	if s.P99LatencyMS != 99 {
		t.Errorf("p99 = %v, want 99", s.P99LatencyMS)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := testMonitor(10).Summary()
	if s.TotalRequests != 0 || s.AvgLatencyMS != 0 || s.CacheHitRate != 0 {
		t.Errorf("empty summary not zeroed: %+v", s)
	}
}

func TestReset(t *testing.T) {
	m := testMonitor(10)
	m.Record(events.ScoreEvent{Strategy: "adaptive", ElapsedMS: 5})
	m.Reset()
	s := m.Summary()
	if s.TotalRequests != 0 || len(s.StrategyCounts) != 0 || s.MaxLatencyMS != 0 {
		t.Errorf("reset did not clear statistics: %+v", s)
	}
}

func TestRunConsumesBus(t *testing.T) {
	bus := events.NewBus(slog.New(slog.DiscardHandler))
	m := testMonitor(10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, bus) }()

	// The gochannel transport drops messages published before the
	// subscription is registered.
	time.Sleep(50 * time.Millisecond)

	pub := events.NewPublisher(bus, zerolog.Nop())
	pub.Publish(events.ScoreEvent{Strategy: "adaptive", ElapsedMS: 3})
	pub.Publish(events.ScoreEvent{Strategy: "adaptive", ElapsedMS: 4, CacheHit: true})

	deadline := time.After(2 * time.Second)
	for m.Summary().TotalRequests < 2 {
		select {
		case <-deadline:
			t.Fatalf("monitor consumed %d events, want 2", m.Summary().TotalRequests)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Errorf("Run() returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop on context cancellation")
	}
}
