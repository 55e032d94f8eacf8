// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

// ErrMissingTitle is the one calling-contract violation the cache
// surfaces: without an item identity no fingerprint can be formed.
var ErrMissingTitle = fmt.Errorf("item title required to form a cache fingerprint")

// Fingerprint derives the deterministic cache key for one evaluation.
// Preference values are clamped and rounded to 3 decimals and always
// serialized in canonical genre-id order, so the key is independent of
// map iteration order. The item contributes title, sorted lower-cased
// genre labels, popularity and year; the strategy name closes the key
// since different strategies produce different bundles.
func Fingerprint(prefs models.PreferenceProfile, item models.ItemDescriptor, strategy Strategy) (string, error) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return "", ErrMissingTitle
	}

	ids := make([]string, len(models.CanonicalGenres))
	copy(ids, models.CanonicalGenres)
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(round3(prefs.Value(id)), 'f', 3, 64))
		b.WriteByte('|')
	}

	b.WriteString(strings.ToLower(title))
	b.WriteByte('|')

	genres := make([]string, 0, len(item.Genres))
	for _, g := range item.Genres {
		genres = append(genres, strings.ToLower(strings.TrimSpace(g)))
	}
	sort.Strings(genres)
	b.WriteString(strings.Join(genres, ","))
	b.WriteByte('|')

	b.WriteString(strconv.FormatFloat(item.Popularity, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(item.Year))
	b.WriteByte('|')
	b.WriteString(strategy.String())

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:]), nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
