// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

// Triangle is a triangular membership function with breakpoints
// a <= b <= c. Degenerate triangles (a == b == c) act as singletons,
// which is how binary genre-presence facts are modeled.
type Triangle struct {
	A, B, C float64
}

// Tri is a convenience constructor used by the rule-base tables.
func Tri(a, b, c float64) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Membership evaluates the triangle at x: 0 outside [a,c], exactly 1
// at b, linear rise on [a,b] and linear fall on [b,c].
func (t Triangle) Membership(x float64) float64 {
	if x < t.A || x > t.C {
		return 0
	}
	switch {
	case x == t.B:
		return 1
	case x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.C - x) / (t.C - t.B)
	}
}
