// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package scoring orchestrates one hybrid evaluation end to end: it
// derives the genre_match and watch_sentiment inputs, runs the fuzzy
// engine, consults the external predictor, blends both opinions with
// the selected combination strategy, and caches the resulting bundle
// under a deterministic fingerprint.
//
// The cache is FIFO-by-insertion with lazy TTL expiry, guarded by one
// mutex whose critical section is a map operation only; inference and
// predictor calls always happen outside the lock.
package scoring
