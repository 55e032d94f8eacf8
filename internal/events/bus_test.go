// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package events

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus(slog.New(slog.DiscardHandler))
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx, TopicScoreComputed)
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	pub := NewPublisher(bus, zerolog.Nop())
	want := ScoreEvent{Strategy: "adaptive", FuzzyScore: 6.5, HybridScore: 7.2, CacheHit: true}
	pub.Publish(want)

	select {
	case msg := <-msgs:
		var got ScoreEvent
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		msg.Ack()
		if got.Strategy != want.Strategy || got.FuzzyScore != want.FuzzyScore || !got.CacheHit {
			t.Errorf("received %+v, want %+v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

func TestPublishAfterCloseDoesNotPanic(t *testing.T) {
	bus := NewBus(slog.New(slog.DiscardHandler))
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	// Telemetry loss is logged and swallowed.
	NewPublisher(bus, zerolog.Nop()).Publish(ScoreEvent{Strategy: "adaptive"})
}
