// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package fuzzy implements the Mamdani inference engine that produces
// the rule-based half of every hybrid score.
//
// The engine is built once at startup from a fixed table of 47 rules in
// three families:
//
//   - A (35): per-genre preference terms mapped 1:1 onto output terms,
//     gated by genre presence so an item lacking a genre contributes
//     nothing regardless of how much the user likes it.
//   - B (9): the popularity x genre_match cross product.
//   - C (3): coarse watch-history sentiment.
//
// Evaluation follows the textbook pipeline: triangular fuzzification,
// min-firing over conjunctive antecedents, min-implication clipping,
// max-aggregation over a [0,10] output universe discretized at integer
// steps, and centroid defuzzification. When nothing fires the engine
// returns the neutral midpoint 5.0 rather than an error; the engine
// never fails a caller.
package fuzzy
