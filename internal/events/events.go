// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

// Package events carries score telemetry over an in-process Watermill
// pub/sub channel. Scoring publishes one event per evaluation; the
// performance monitor subscribes. Telemetry is strictly one-way: a
// slow or absent consumer never affects scoring.
package events

import (
	"time"
)

// TopicScoreComputed carries one ScoreEvent per finished evaluation.
const TopicScoreComputed = "score.computed"

// ScoreEvent is the per-evaluation telemetry record.
type ScoreEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	Strategy    string    `json:"strategy"`
	FuzzyScore  float64   `json:"fuzzy_score"`
	ANNScore    *float64  `json:"ann_score,omitempty"`
	HybridScore float64   `json:"hybrid_score"`
	CacheHit    bool      `json:"cache_hit"`
	ElapsedMS   float64   `json:"elapsed_ms"`
	FuzzyMS     float64   `json:"fuzzy_ms"`
	ANNMS       float64   `json:"ann_ms"`
}
