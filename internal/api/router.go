// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinefuzz/cinefuzz/internal/config"
	"github.com/cinefuzz/cinefuzz/internal/middleware"
)

// NewRouter assembles the chi router with the full middleware chain
// and all API routes.
func NewRouter(h *Handler, cfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}
	r.Use(middleware.Prometheus)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", h.HandleScore)
		r.Post("/score/batch", h.HandleScoreBatch)
		r.Get("/strategies", h.HandleStrategies)
		r.Get("/stats", h.HandleStats)
		r.Get("/cache/stats", h.HandleCacheStats)
		r.Post("/cache/clear", h.HandleCacheClear)
		r.Get("/health", h.HandleHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
