// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package events

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// NewBus builds the in-process gochannel pub/sub. The buffered output
// channel absorbs bursts so publishing rarely blocks scoring; a
// subscriber that stalls with a full buffer would backpressure
// Publish, which is why the monitor consumer runs supervised and
// drains continuously.
func NewBus(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewSlogLogger(logger),
	)
}

// Publisher emits ScoreEvents onto the bus.
type Publisher struct {
	pub    message.Publisher
	logger zerolog.Logger
}

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher, logger zerolog.Logger) *Publisher {
	return &Publisher{
		pub:    pub,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

// Publish sends one event. Failures are logged and swallowed;
// telemetry loss must never surface to a scoring caller.
func (p *Publisher) Publish(ev ScoreEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to marshal score event")
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pub.Publish(TopicScoreComputed, msg); err != nil {
		p.logger.Warn().Err(err).Msg("failed to publish score event")
	}
}
