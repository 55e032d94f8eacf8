// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package main is the entry point for the Cinefuzz scoring server.
//
// Cinefuzz blends a Mamdani fuzzy inference engine with an optional
// external ANN model service to score movies against a user's genre
// preference profile.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 loading (defaults, YAML file, env)
//  2. Fuzzy engine: 47-rule Mamdani rulebase over seven canonical genres
//  3. Predictor: HTTP client with rate limiting and a circuit breaker,
//     or the disabled stub when no model endpoint is configured
//  4. Result cache: bounded FIFO cache with TTL expiry
//  5. Event bus: in-process Watermill pub/sub for score telemetry
//  6. Performance monitor: rolling-window statistics fed from the bus
//  7. HTTP server: REST API plus Prometheus metrics
//
// Everything runs under a Suture supervisor tree; the HTTP listener and
// the telemetry consumer restart independently on failure.
//
// # Configuration
//
// Configuration is loaded with layered precedence (highest wins):
//   - CINEFUZZ_-prefixed environment variables
//   - Config file (CINEFUZZ_CONFIG, ./config.yaml, or /etc/cinefuzz/config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the listener
// stops accepting connections, in-flight requests get the configured
// shutdown timeout, and the supervisor tree drains.
//
// # Example Usage
//
// Fuzzy-only mode (no model service):
//
//	./cinefuzz
//
// With an external ANN model service:
//
//	export CINEFUZZ_PREDICTOR_ENABLED=true
//	export CINEFUZZ_PREDICTOR_URL=http://model:9000/predict
//	./cinefuzz
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinefuzz/cinefuzz/internal/api"
	"github.com/cinefuzz/cinefuzz/internal/config"
	"github.com/cinefuzz/cinefuzz/internal/events"
	"github.com/cinefuzz/cinefuzz/internal/fuzzy"
	"github.com/cinefuzz/cinefuzz/internal/logging"
	"github.com/cinefuzz/cinefuzz/internal/monitor"
	"github.com/cinefuzz/cinefuzz/internal/predictor"
	"github.com/cinefuzz/cinefuzz/internal/scoring"
	"github.com/cinefuzz/cinefuzz/internal/supervisor"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("default_strategy", cfg.Scoring.DefaultStrategy).
		Bool("predictor_enabled", cfg.Predictor.Enabled).
		Msg("Starting Cinefuzz")

	logger := logging.Logger()

	engine := fuzzy.NewEngine(logger)
	logging.Info().Int("rules", engine.RuleCount()).Msg("Fuzzy engine initialized")

	var pred predictor.Predictor = predictor.Disabled{}
	if cfg.Predictor.Enabled {
		pred = predictor.NewClient(predictor.Config{
			URL:               cfg.Predictor.URL,
			Timeout:           cfg.Predictor.Timeout,
			RequestsPerSecond: cfg.Predictor.RequestsPerSecond,
			Burst:             cfg.Predictor.Burst,
			BreakerFailures:   cfg.Predictor.BreakerFailures,
			BreakerCooldown:   cfg.Predictor.BreakerCooldown,
		}, logger)
		logging.Info().Str("url", cfg.Predictor.URL).Msg("ANN predictor enabled")
	} else {
		logging.Info().Msg("ANN predictor disabled, running fuzzy-only")
	}

	cache := scoring.NewResultCache(scoring.CacheConfig{
		Capacity: cfg.Scoring.CacheCapacity,
		TTL:      cfg.Scoring.CacheTTL,
	}, logger)

	// Bridge zerolog to slog for watermill and sutureslog.
	slogLogger := logging.NewSlogLogger()

	bus := events.NewBus(slogLogger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event bus")
		}
	}()
	publisher := events.NewPublisher(bus, logger)

	mon := monitor.New(monitor.Config{WindowSize: cfg.Monitor.WindowSize}, logger)

	svc := scoring.NewService(engine, pred, cache, publisher, scoring.ServiceConfig{
		DefaultStrategy: cfg.Scoring.DefaultStrategy,
		FuzzyWeight:     cfg.Scoring.FuzzyWeight,
		Cache:           scoring.CacheConfig{Capacity: cfg.Scoring.CacheCapacity, TTL: cfg.Scoring.CacheTTL},
	}, logger)

	handler := api.NewHandler(svc, mon, version)
	router := api.NewRouter(handler, cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddTelemetryService(supervisor.NewMonitorService(mon, bus))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Cinefuzz stopped gracefully")
}
