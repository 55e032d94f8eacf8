// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package predictor

import (
	"context"
	"errors"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

// ErrUnavailable signals that no ANN score can be produced right now.
// Callers treat it as a normal degraded path, never as a failure.
var ErrUnavailable = errors.New("predictor unavailable")

// Predictor produces the learned-model opinion for one evaluation.
type Predictor interface {
	// Predict returns a score in [0,10] or ErrUnavailable. Other
	// errors are treated like ErrUnavailable by the scoring pipeline
	// but are logged at a higher severity.
	Predict(ctx context.Context, prefs models.PreferenceProfile, item models.ItemDescriptor, history *models.WatchHistory) (float64, error)
}

// Disabled is the Predictor used when no model endpoint is configured.
type Disabled struct{}

// Predict always reports unavailability.
func (Disabled) Predict(context.Context, models.PreferenceProfile, models.ItemDescriptor, *models.WatchHistory) (float64, error) {
	return 0, ErrUnavailable
}
