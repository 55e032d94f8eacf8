// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

// Term is one named linguistic value of a variable.
type Term struct {
	Name  string
	Shape Triangle
}

// Variable is a named linguistic variable over a bounded universe.
// Terms may overlap and need not sum to 1 at any point.
type Variable struct {
	Name  string
	Min   float64
	Max   float64
	Terms []Term
}

// Membership fuzzifies a crisp value against one term. Values outside
// the universe are clamped first, never rejected.
func (v Variable) Membership(x float64, term string) float64 {
	if x < v.Min {
		x = v.Min
	}
	if x > v.Max {
		x = v.Max
	}
	for _, t := range v.Terms {
		if t.Name == term {
			return t.Shape.Membership(x)
		}
	}
	return 0
}
