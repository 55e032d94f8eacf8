// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

// Clause references one (variable, term) antecedent condition.
type Clause struct {
	Variable string
	Term     string
}

// Rule is a conjunctive Mamdani rule: all antecedent clauses are
// combined with min, the consequent names a term of the output
// variable. Rules are built once at engine construction and never
// mutated afterwards.
type Rule struct {
	When []Clause
	Then string
}
