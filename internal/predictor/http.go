// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package predictor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/cinefuzz/cinefuzz/internal/metrics"
	"github.com/cinefuzz/cinefuzz/internal/models"
)

// Config holds the HTTP predictor settings.
type Config struct {
	// URL is the model service endpoint, e.g. http://ann:8501/predict.
	URL string
	// Timeout bounds one prediction round trip. Default: 2s.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls. Default: 50.
	RequestsPerSecond float64
	// Burst is the limiter burst size. Default: 10.
	Burst int
	// BreakerFailures is the consecutive-failure count that opens the
	// circuit. Default: 5.
	BreakerFailures uint32
	// BreakerCooldown is how long the circuit stays open. Default: 30s.
	BreakerCooldown time.Duration
}

// Client calls the external model service over HTTP. A circuit breaker
// sheds load while the upstream is failing and a token-bucket limiter
// caps outbound request rate; both failure modes surface as
// ErrUnavailable so scoring degrades instead of stalling.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[float64]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient builds the HTTP predictor. Zero config values get
// production defaults.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 50
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:    "ann-predictor",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
	})

	return &Client{
		url:     cfg.URL,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger.With().Str("component", "predictor").Logger(),
	}
}

type predictRequest struct {
	Preferences  models.PreferenceProfile `json:"preferences"`
	Item         models.ItemDescriptor    `json:"item"`
	WatchHistory *models.WatchHistory     `json:"watch_history,omitempty"`
}

type predictResponse struct {
	Score float64 `json:"score"`
}

// Predict calls the model service. Every failure path (limiter wait
// aborted, open breaker, transport error, bad status, malformed body)
// collapses into ErrUnavailable.
func (c *Client) Predict(ctx context.Context, prefs models.PreferenceProfile, item models.ItemDescriptor, history *models.WatchHistory) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: rate limit wait: %v", ErrUnavailable, err)
	}

	score, err := c.breaker.Execute(func() (float64, error) {
		return c.call(ctx, prefs, item, history)
	})
	if err != nil {
		metrics.PredictorRequests.WithLabelValues("unavailable").Inc()
		c.logger.Debug().Err(err).Str("title", item.Title).Msg("prediction unavailable")
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.PredictorRequests.WithLabelValues("ok").Inc()
	return models.ClampScore(score), nil
}

func (c *Client) call(ctx context.Context, prefs models.PreferenceProfile, item models.ItemDescriptor, history *models.WatchHistory) (float64, error) {
	body, err := json.Marshal(predictRequest{
		Preferences:  prefs,
		Item:         item,
		WatchHistory: history,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model service call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return out.Score, nil
}
