// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package models

import (
	"strings"
)

// CanonicalGenres is the fixed genre vocabulary of the scoring system.
// Preferences, rules and genre matching all operate on these identifiers.
var CanonicalGenres = []string{
	"action",
	"comedy",
	"romance",
	"thriller",
	"sci_fi",
	"drama",
	"horror",
}

// DefaultPreference is assumed for any genre a profile does not mention.
const DefaultPreference = 5.0

// PreferenceProfile maps canonical genre identifiers to affinity values
// on the [0,10] scale. Missing genres default to DefaultPreference.
type PreferenceProfile map[string]float64

// Value returns the clamped preference for the given canonical genre,
// falling back to DefaultPreference when the genre is absent.
func (p PreferenceProfile) Value(genre string) float64 {
	v, ok := p[genre]
	if !ok {
		return DefaultPreference
	}
	return ClampScore(v)
}

// ItemDescriptor describes the movie being scored. Fields beyond the
// ones the rule base consumes (runtime, budget, revenue) are carried
// through untouched for callers that round-trip item metadata.
type ItemDescriptor struct {
	Title      string   `json:"title"`
	Genres     []string `json:"genres"`
	Popularity float64  `json:"popularity"`
	Year       int      `json:"year,omitempty"`
	Runtime    int      `json:"runtime,omitempty"`
	Budget     float64  `json:"budget,omitempty"`
	Revenue    float64  `json:"revenue,omitempty"`
}

// WatchHistory summarizes a user's reaction to comparable items.
// A nil history or zero WatchCount means the user is new.
type WatchHistory struct {
	LikedRatio    float64 `json:"liked_ratio"`
	DislikedRatio float64 `json:"disliked_ratio"`
	WatchCount    int     `json:"watch_count"`
}

// ResultBundle is the per-item scoring outcome.
type ResultBundle struct {
	RequestID   string   `json:"request_id,omitempty"`
	Title       string   `json:"title"`
	FuzzyScore  float64  `json:"fuzzy_score"`
	ANNScore    *float64 `json:"ann_score,omitempty"`
	HybridScore float64  `json:"hybrid_score"`
	Strategy    string   `json:"strategy"`
	Agreement   *float64 `json:"agreement,omitempty"`
	Confidence  float64  `json:"confidence"`
	GenreMatch  float64  `json:"genre_match"`
	Explanation string   `json:"explanation"`
	FromCache   bool     `json:"from_cache"`
	ElapsedMS   float64  `json:"elapsed_ms"`
}

// ClampScore bounds a value to the [0,10] score scale.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// ClampPopularity bounds a value to the [0,100] popularity scale.
func ClampPopularity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampUnit bounds a value to [0,1].
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeGenreLabel converts a free-form genre label ("Sci-Fi",
// "science fiction") into canonical-comparable form: lowercased with
// hyphens and spaces collapsed to underscores.
func NormalizeGenreLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// GenreMatches reports whether a normalized item genre label counts as
// a match for a canonical genre. Matching is deliberately loose: exact
// equality or containment in either direction, so "sci_fi_adventure"
// still matches "sci_fi".
func GenreMatches(normalized, canonical string) bool {
	if normalized == "" {
		return false
	}
	return normalized == canonical ||
		strings.Contains(normalized, canonical) ||
		strings.Contains(canonical, normalized)
}
