// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

import (
	"testing"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

func TestRuleTableSize(t *testing.T) {
	rules := buildRules()
	if len(rules) != 47 {
		t.Fatalf("rule table has %d rules, want 47", len(rules))
	}
}

func TestRuleFamilies(t *testing.T) {
	rules := buildRules()

	var prefRules, popMatchRules, sentimentRules int
	for _, r := range rules {
		switch {
		case len(r.When) == 2 && r.When[0].Variable == VarPopularity:
			popMatchRules++
		case len(r.When) == 1 && r.When[0].Variable == VarWatchSentiment:
			sentimentRules++
		case len(r.When) == 2:
			prefRules++
			if r.When[1].Term != "present" {
				t.Errorf("preference rule %v lacks a presence gate", r)
			}
			if r.When[0].Term != r.Then {
				t.Errorf("preference rule maps %q to %q, want 1:1 term mapping", r.When[0].Term, r.Then)
			}
		default:
			t.Errorf("unclassifiable rule: %v", r)
		}
	}

	if prefRules != 7*5 {
		t.Errorf("preference rules = %d, want 35", prefRules)
	}
	if popMatchRules != 9 {
		t.Errorf("popularity/match rules = %d, want 9", popMatchRules)
	}
	if sentimentRules != 3 {
		t.Errorf("sentiment rules = %d, want 3", sentimentRules)
	}
}

func TestPopularityMatchConsequents(t *testing.T) {
	rules := buildRules()
	want := map[string]string{
		"high|excellent":   "very_high",
		"medium|excellent": "high",
		"low|excellent":    "medium",
		"high|average":     "high",
		"medium|average":   "medium",
		"low|average":      "low",
		"high|poor":        "medium",
		"medium|poor":      "low",
		"low|poor":         "very_low",
	}
	seen := 0
	for _, r := range rules {
		if len(r.When) != 2 || r.When[0].Variable != VarPopularity {
			continue
		}
		key := r.When[0].Term + "|" + r.When[1].Term
		if out, ok := want[key]; !ok || out != r.Then {
			t.Errorf("rule (%s) -> %q, want %q", key, r.Then, out)
		}
		seen++
	}
	if seen != len(want) {
		t.Errorf("saw %d popularity/match rules, want %d", seen, len(want))
	}
}

func TestVariablesCoverAllGenres(t *testing.T) {
	vars := buildVariables()
	for _, g := range models.CanonicalGenres {
		if _, ok := vars[PrefVar(g)]; !ok {
			t.Errorf("missing preference variable for %q", g)
		}
		if _, ok := vars[PresenceVar(g)]; !ok {
			t.Errorf("missing presence variable for %q", g)
		}
	}
	for _, name := range []string{VarPopularity, VarGenreMatch, VarWatchSentiment, VarOutput} {
		if _, ok := vars[name]; !ok {
			t.Errorf("missing variable %q", name)
		}
	}
}
