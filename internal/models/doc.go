// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package models defines the domain types shared across the scoring
// pipeline: preference profiles, item descriptors, watch histories and
// the result bundle returned to callers.
//
// All numeric inputs are clamped at the boundary (preferences and scores
// to [0,10], popularity to [0,100]) so downstream components can assume
// in-range values without re-validating.
package models
