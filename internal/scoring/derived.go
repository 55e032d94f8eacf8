// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"github.com/cinefuzz/cinefuzz/internal/models"
)

// GenreMatch computes the preference-weighted genre overlap between a
// profile and an item's free-form genre labels, in [0,1].
//
// Every canonical genre contributes its preference weight to the
// denominator; only genres matching one of the item's normalized
// labels contribute to the numerator. An item without genre labels
// scores 0 regardless of preferences.
func GenreMatch(prefs models.PreferenceProfile, itemGenres []string) float64 {
	if len(itemGenres) == 0 {
		return 0
	}

	normalized := make([]string, 0, len(itemGenres))
	for _, g := range itemGenres {
		if n := models.NormalizeGenreLabel(g); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return 0
	}

	var total, matched float64
	for _, g := range models.CanonicalGenres {
		w := prefs.Value(g)
		total += w
		for _, n := range normalized {
			if models.GenreMatches(n, g) {
				matched += w
				break
			}
		}
	}
	if total < 1e-9 {
		return 0
	}
	return models.ClampUnit(matched / total)
}

// WatchSentiment collapses a watch history into one of three crisp
// sentiment values on the [0,10] scale: 9 (liked), 1 (disliked) or 5
// (mixed or no history). Deliberately coarse; the fuzzy sentiment
// terms do the smoothing.
func WatchSentiment(history *models.WatchHistory) float64 {
	if history == nil || history.WatchCount == 0 {
		return 5.0
	}
	switch {
	case history.LikedRatio > 0.7:
		return 9.0
	case history.DislikedRatio > 0.7:
		return 1.0
	default:
		return 5.0
	}
}

// GenrePresence reports which canonical genres an item carries, using
// the same loose label matching as GenreMatch.
func GenrePresence(itemGenres []string) map[string]bool {
	presence := make(map[string]bool, len(models.CanonicalGenres))
	for _, raw := range itemGenres {
		n := models.NormalizeGenreLabel(raw)
		if n == "" {
			continue
		}
		for _, g := range models.CanonicalGenres {
			if models.GenreMatches(n, g) {
				presence[g] = true
			}
		}
	}
	return presence
}
