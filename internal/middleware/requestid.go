// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package middleware holds the HTTP middleware shared by every route:
// request-ID propagation and Prometheus instrumentation.
package middleware

import (
	"net/http"

	"github.com/cinefuzz/cinefuzz/internal/logging"
)

// RequestID tags every request with a unique ID, honoring one supplied
// by an upstream proxy. The ID lands in the X-Request-ID response
// header and in the request context for structured logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
