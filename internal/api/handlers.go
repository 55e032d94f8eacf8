// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/cinefuzz/cinefuzz/internal/logging"
	"github.com/cinefuzz/cinefuzz/internal/monitor"
	"github.com/cinefuzz/cinefuzz/internal/scoring"
)

// Handler serves the scoring API.
type Handler struct {
	service  *scoring.Service
	monitor  *monitor.Monitor
	validate *validator.Validate
	version  string
	started  time.Time
}

// NewHandler wires the handler to its collaborators.
func NewHandler(service *scoring.Service, mon *monitor.Monitor, version string) *Handler {
	return &Handler{
		service:  service,
		monitor:  mon,
		validate: validator.New(),
		version:  version,
		started:  time.Now(),
	}
}

// HandleScore scores one movie against a preference profile.
//
// POST /api/v1/score
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.ValidationError("request validation failed", validationDetails(err))
		return
	}

	bundle, err := h.service.ScoreOne(r.Context(), req.Preferences, req.Movie.toModel(), req.WatchHistory.toModel(), req.Strategy)
	if err != nil {
		if errors.Is(err, scoring.ErrMissingTitle) {
			rw.BadRequest(err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("score request failed")
		rw.InternalError("scoring failed")
		return
	}
	bundle.RequestID = logging.RequestIDFromContext(r.Context())

	rw.Success(bundle)
}

// HandleScoreBatch scores an ordered list of movies. Output order
// mirrors input order; all entries share one batch elapsed time.
//
// POST /api/v1/score/batch
func (h *Handler) HandleScoreBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BatchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.ValidationError("request validation failed", validationDetails(err))
		return
	}

	bundles, err := h.service.ScoreBatch(r.Context(), req.Preferences, toDescriptors(req.Movies), req.WatchHistory.toModel(), req.Strategy)
	if err != nil {
		if errors.Is(err, scoring.ErrMissingTitle) {
			rw.BadRequest(err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("batch score request failed")
		rw.InternalError("batch scoring failed")
		return
	}

	rw.Success(map[string]any{
		"results": bundles,
		"count":   len(bundles),
	})
}

// HandleStrategies lists the available combination strategies.
//
// GET /api/v1/strategies
func (h *Handler) HandleStrategies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	type strategyInfo struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Default     bool   `json:"default"`
	}
	list := make([]strategyInfo, 0, len(scoring.Strategies()))
	for _, s := range scoring.Strategies() {
		list = append(list, strategyInfo{
			ID:          s.String(),
			Description: s.Description(),
			Default:     s == h.service.DefaultStrategy(),
		})
	}
	rw.Success(map[string]any{"strategies": list})
}

// HandleStats reports rolling performance statistics plus the cache
// snapshot.
//
// GET /api/v1/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]any{
		"performance": h.monitor.Summary(),
		"cache":       h.service.CacheStats(),
		"version":     h.version,
	})
}

// HandleCacheStats reports the result cache snapshot.
//
// GET /api/v1/cache/stats
func (h *Handler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.service.CacheStats())
}

// HandleCacheClear drops every cached bundle.
//
// POST /api/v1/cache/clear
func (h *Handler) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCache()
	NewResponseWriter(w, r).Success(map[string]any{"cleared": true})
}

// HandleHealth reports liveness. The service has no external hard
// dependency: a degraded predictor still yields fuzzy-only scores.
//
// GET /api/v1/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"status":         "healthy",
		"version":        h.version,
		"uptime_seconds": time.Since(h.started).Seconds(),
	})
}

// validationDetails flattens validator errors into field/tag pairs.
func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	details := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, map[string]string{
			"field": fe.Namespace(),
			"tag":   fe.Tag(),
		})
	}
	return details
}
