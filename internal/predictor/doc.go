// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package predictor adapts the external learned model behind the
// Predictor interface. The scoring pipeline only needs the numeric
// contract (a score in [0,10]) and an explicit unavailability signal;
// how the score is produced is out of scope.
//
// The HTTP client wraps the upstream in a circuit breaker and a rate
// limiter so a degraded model service cannot stall scoring: every
// failure mode collapses into ErrUnavailable and the dispatcher falls
// back to fuzzy-only mode.
package predictor
