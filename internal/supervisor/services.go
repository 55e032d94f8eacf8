// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/cinefuzz/cinefuzz/internal/logging"
	"github.com/cinefuzz/cinefuzz/internal/monitor"
)

// HTTPServerService runs an http.Server under suture supervision.
// Serve blocks until the listener fails or the context is canceled,
// then shuts the server down gracefully.
type HTTPServerService struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps the server for supervision.
func NewHTTPServerService(server *http.Server, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Component("http").Info().Str("addr", s.server.Addr).Msg("listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logging.Component("http").Warn().Err(err).Msg("graceful shutdown failed, closing")
			_ = s.server.Close()
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPServerService) String() string {
	return fmt.Sprintf("http-server[%s]", s.server.Addr)
}

// MonitorService runs the performance monitor's bus consumer under
// supervision. A crash in event decoding restarts the consumer without
// losing lifetime counters, which live in the Monitor itself.
type MonitorService struct {
	monitor    *monitor.Monitor
	subscriber message.Subscriber
}

// NewMonitorService wraps the monitor consumer for supervision.
func NewMonitorService(mon *monitor.Monitor, sub message.Subscriber) *MonitorService {
	return &MonitorService{monitor: mon, subscriber: sub}
}

// Serve implements suture.Service.
func (s *MonitorService) Serve(ctx context.Context) error {
	return s.monitor.Run(ctx, s.subscriber)
}

func (s *MonitorService) String() string {
	return "performance-monitor"
}
