// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

import (
	"github.com/cinefuzz/cinefuzz/internal/models"
)

// Variable and term names used by the rule base. Input facts supplied
// to Evaluate are keyed by these names.
const (
	VarPopularity     = "popularity"
	VarGenreMatch     = "genre_match"
	VarWatchSentiment = "watch_sentiment"
	VarOutput         = "recommendation"

	prefSuffix     = "_pref"
	presenceSuffix = "_present"
)

// prefTerms is shared by the seven per-genre preference variables.
// Family A maps each of these 1:1 onto the same-named output term.
var prefTerms = []Term{
	{Name: "very_low", Shape: Tri(0, 0, 2)},
	{Name: "low", Shape: Tri(1, 3, 4)},
	{Name: "medium", Shape: Tri(3, 5, 7)},
	{Name: "high", Shape: Tri(6, 7.5, 9)},
	{Name: "very_high", Shape: Tri(8, 10, 10)},
}

// outputTerms deliberately differ from prefTerms in the "high" peak.
var outputTerms = []Term{
	{Name: "very_low", Shape: Tri(0, 0, 2)},
	{Name: "low", Shape: Tri(1, 3, 4)},
	{Name: "medium", Shape: Tri(3, 5, 7)},
	{Name: "high", Shape: Tri(6, 8, 9)},
	{Name: "very_high", Shape: Tri(8, 10, 10)},
}

// PrefVar returns the preference variable name for a canonical genre.
func PrefVar(genre string) string { return genre + prefSuffix }

// PresenceVar returns the presence variable name for a canonical genre.
func PresenceVar(genre string) string { return genre + presenceSuffix }

// buildVariables constructs every linguistic variable of the system.
func buildVariables() map[string]Variable {
	vars := make(map[string]Variable, 2*len(models.CanonicalGenres)+4)

	for _, g := range models.CanonicalGenres {
		vars[PrefVar(g)] = Variable{
			Name:  PrefVar(g),
			Min:   0,
			Max:   10,
			Terms: prefTerms,
		}
		// Presence is a binary fact modeled as two singletons so the
		// generic fuzzification path handles it without a special case.
		vars[PresenceVar(g)] = Variable{
			Name: PresenceVar(g),
			Min:  0,
			Max:  1,
			Terms: []Term{
				{Name: "absent", Shape: Tri(0, 0, 0)},
				{Name: "present", Shape: Tri(1, 1, 1)},
			},
		}
	}

	vars[VarPopularity] = Variable{
		Name: VarPopularity,
		Min:  0,
		Max:  100,
		Terms: []Term{
			{Name: "low", Shape: Tri(0, 0, 40)},
			{Name: "medium", Shape: Tri(30, 50, 70)},
			{Name: "high", Shape: Tri(60, 80, 100)},
		},
	}
	vars[VarGenreMatch] = Variable{
		Name: VarGenreMatch,
		Min:  0,
		Max:  1,
		Terms: []Term{
			{Name: "poor", Shape: Tri(0, 0, 0.4)},
			{Name: "average", Shape: Tri(0.3, 0.5, 0.7)},
			{Name: "excellent", Shape: Tri(0.6, 0.8, 1.0)},
		},
	}
	vars[VarWatchSentiment] = Variable{
		Name: VarWatchSentiment,
		Min:  0,
		Max:  10,
		Terms: []Term{
			{Name: "disliked", Shape: Tri(0, 0, 3)},
			{Name: "mixed", Shape: Tri(2, 5, 8)},
			{Name: "liked", Shape: Tri(7, 10, 10)},
		},
	}
	vars[VarOutput] = Variable{
		Name:  VarOutput,
		Min:   0,
		Max:   10,
		Terms: outputTerms,
	}

	return vars
}

// buildRules constructs the fixed 47-rule table.
func buildRules() []Rule {
	rules := make([]Rule, 0, 47)

	// Family A (35): preference term -> same-named output term, gated
	// by genre presence.
	for _, g := range models.CanonicalGenres {
		for _, t := range prefTerms {
			rules = append(rules, Rule{
				When: []Clause{
					{Variable: PrefVar(g), Term: t.Name},
					{Variable: PresenceVar(g), Term: "present"},
				},
				Then: t.Name,
			})
		}
	}

	// Family B (9): popularity x genre_match cross product.
	popMatch := []struct {
		pop, match, out string
	}{
		{"high", "excellent", "very_high"},
		{"medium", "excellent", "high"},
		{"low", "excellent", "medium"},
		{"high", "average", "high"},
		{"medium", "average", "medium"},
		{"low", "average", "low"},
		{"high", "poor", "medium"},
		{"medium", "poor", "low"},
		{"low", "poor", "very_low"},
	}
	for _, r := range popMatch {
		rules = append(rules, Rule{
			When: []Clause{
				{Variable: VarPopularity, Term: r.pop},
				{Variable: VarGenreMatch, Term: r.match},
			},
			Then: r.out,
		})
	}

	// Family C (3): watch-history sentiment.
	rules = append(rules,
		Rule{When: []Clause{{Variable: VarWatchSentiment, Term: "liked"}}, Then: "high"},
		Rule{When: []Clause{{Variable: VarWatchSentiment, Term: "disliked"}}, Then: "very_low"},
		Rule{When: []Clause{{Variable: VarWatchSentiment, Term: "mixed"}}, Then: "medium"},
	)

	return rules
}
