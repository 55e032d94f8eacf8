// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package config loads the service configuration with layered
// precedence: struct defaults, then an optional YAML file, then
// CINEFUZZ_-prefixed environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Scoring   ScoringConfig   `koanf:"scoring"`
	Predictor PredictorConfig `koanf:"predictor"`
	Monitor   MonitorConfig   `koanf:"monitor"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds the zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ScoringConfig holds the pipeline and cache settings.
type ScoringConfig struct {
	DefaultStrategy string        `koanf:"default_strategy"`
	FuzzyWeight     float64       `koanf:"fuzzy_weight"`
	CacheCapacity   int           `koanf:"cache_capacity"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
}

// PredictorConfig holds the external model service settings.
type PredictorConfig struct {
	Enabled           bool          `koanf:"enabled"`
	URL               string        `koanf:"url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerCooldown   time.Duration `koanf:"breaker_cooldown"`
}

// MonitorConfig holds the performance monitor settings.
type MonitorConfig struct {
	WindowSize int `koanf:"window_size"`
}

// APIConfig holds the HTTP middleware settings.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Scoring: ScoringConfig{
			DefaultStrategy: "adaptive",
			FuzzyWeight:     0.6,
			CacheCapacity:   1000,
			CacheTTL:        5 * time.Minute,
		},
		// Disabled by default: without a configured model endpoint the
		// service runs in fuzzy-only mode.
		Predictor: PredictorConfig{
			Enabled:           false,
			Timeout:           2 * time.Second,
			RequestsPerSecond: 50,
			Burst:             10,
			BreakerFailures:   5,
			BreakerCooldown:   30 * time.Second,
		},
		Monitor: MonitorConfig{
			WindowSize: 1000,
		},
		API: APIConfig{
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1,65535]", c.Server.Port)
	}
	if c.Scoring.FuzzyWeight <= 0 || c.Scoring.FuzzyWeight > 1 {
		return fmt.Errorf("scoring.fuzzy_weight %v must be in (0,1]", c.Scoring.FuzzyWeight)
	}
	if c.Scoring.CacheCapacity < 1 {
		return fmt.Errorf("scoring.cache_capacity %d must be positive", c.Scoring.CacheCapacity)
	}
	if c.Scoring.CacheTTL <= 0 {
		return fmt.Errorf("scoring.cache_ttl %v must be positive", c.Scoring.CacheTTL)
	}
	if c.Predictor.Enabled && c.Predictor.URL == "" {
		return fmt.Errorf("predictor.url required when predictor.enabled is true")
	}
	if c.Monitor.WindowSize < 1 {
		return fmt.Errorf("monitor.window_size %d must be positive", c.Monitor.WindowSize)
	}
	if c.API.RateLimitRequests < 1 {
		return fmt.Errorf("api.rate_limit_requests %d must be positive", c.API.RateLimitRequests)
	}
	return nil
}
