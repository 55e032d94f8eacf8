// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"math"
	"testing"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		id   string
		want Strategy
	}{
		{"", StrategyAdaptive},
		{"adaptive", StrategyAdaptive},
		{"weighted_average", StrategyWeightedAverage},
		{"fuzzy_dominant", StrategyFuzzyDominant},
		{"ann_dominant", StrategyANNDominant},
		{"confidence_weighted", StrategyConfidenceWeighted},
		{"no_such_strategy", StrategyWeightedAverage},
		{"ADAPTIVE", StrategyWeightedAverage}, // identifiers are case-sensitive
	}
	for _, tt := range tests {
		t.Run("id_"+tt.id, func(t *testing.T) {
			if got := ParseStrategy(tt.id); got != tt.want {
				t.Errorf("ParseStrategy(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestStrategyStringRoundTrip(t *testing.T) {
	for _, s := range Strategies() {
		if got := ParseStrategy(s.String()); got != s {
			t.Errorf("ParseStrategy(%q) = %v, want %v", s.String(), got, s)
		}
		if !KnownStrategy(s.String()) {
			t.Errorf("KnownStrategy(%q) = false", s.String())
		}
	}
	if KnownStrategy("bogus") {
		t.Error("KnownStrategy(bogus) = true")
	}
}

func TestCombineFixedBlends(t *testing.T) {
	cc := CombinationContext{}

	tests := []struct {
		name     string
		strategy Strategy
		fuzzy    float64
		ann      float64
		want     float64
	}{
		{"weighted average default weight", StrategyWeightedAverage, 8, 4, 8*0.6 + 4*0.4},
		{"fuzzy dominant", StrategyFuzzyDominant, 8, 4, 8*0.7 + 4*0.3},
		{"ann dominant", StrategyANNDominant, 8, 4, 8*0.3 + 4*0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.strategy.Combine(tt.fuzzy, tt.ann, cc)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Combine(%v, %v) = %v, want %v", tt.fuzzy, tt.ann, got, tt.want)
			}
		})
	}
}

func TestCombineWeightedAverageCustomWeight(t *testing.T) {
	cc := CombinationContext{FuzzyWeight: 0.9}
	got := StrategyWeightedAverage.Combine(10, 0, cc)
	if math.Abs(got-9) > 1e-9 {
		t.Errorf("Combine with weight 0.9 = %v, want 9", got)
	}
}

func TestCombineAdaptiveHighAgreement(t *testing.T) {
	// fuzzy=8.0, ann=8.2: agreement 0.98 > 0.8, simple average.
	got := StrategyAdaptive.Combine(8.0, 8.2, CombinationContext{})
	if math.Abs(got-8.1) > 1e-9 {
		t.Errorf("adaptive agreement blend = %v, want 8.1", got)
	}
}

func TestCombineAdaptiveModerateAgreement(t *testing.T) {
	// fuzzy=8.0, ann=3.0: agreement 0.5 sits in the middle band and
	// takes the fixed 0.6/0.4 blend regardless of context.
	cc := CombinationContext{
		GenreMatch: 0.9,
		History:    &models.WatchHistory{WatchCount: 60},
	}
	got := StrategyAdaptive.Combine(8.0, 3.0, cc)
	if math.Abs(got-6.0) > 1e-9 {
		t.Errorf("adaptive moderate blend = %v, want 6.0", got)
	}
}

func TestCombineAdaptiveLowAgreementDelegates(t *testing.T) {
	// fuzzy=10, ann=2: agreement 0.2 < 0.4 delegates to the
	// confidence-weighted blend.
	cc := CombinationContext{
		GenreMatch: 0.9,
		History:    &models.WatchHistory{WatchCount: 60},
	}
	want := StrategyConfidenceWeighted.Combine(10, 2, cc)
	got := StrategyAdaptive.Combine(10, 2, cc)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("adaptive low-agreement blend = %v, want delegate result %v", got, want)
	}
}

func TestCombineConfidenceWeighted(t *testing.T) {
	tests := []struct {
		name string
		cc   CombinationContext
		want float64 // for fuzzy=10, ann=0: equals final fuzzy weight * 10
	}{
		{"no history shifts fuzzy", CombinationContext{GenreMatch: 0.5}, 7},
		{"deep history shifts ann", CombinationContext{GenreMatch: 0.5, History: &models.WatchHistory{WatchCount: 60}}, 3},
		{"mid history stays even", CombinationContext{GenreMatch: 0.5, History: &models.WatchHistory{WatchCount: 30}}, 5},
		{"strong genre match adds fuzzy", CombinationContext{GenreMatch: 0.9, History: &models.WatchHistory{WatchCount: 30}}, 6},
		{"weak genre match adds ann", CombinationContext{GenreMatch: 0.1, History: &models.WatchHistory{WatchCount: 30}}, 4},
		{"deep history and strong match", CombinationContext{GenreMatch: 0.9, History: &models.WatchHistory{WatchCount: 60}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StrategyConfidenceWeighted.Combine(10, 0, tt.cc)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Combine(10, 0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombineStaysBounded(t *testing.T) {
	for _, s := range Strategies() {
		for _, pair := range [][2]float64{{0, 0}, {10, 10}, {0, 10}, {10, 0}, {5, 7}} {
			got := s.Combine(pair[0], pair[1], CombinationContext{})
			if got < 0 || got > 10 {
				t.Errorf("%s.Combine(%v, %v) = %v, outside [0,10]", s, pair[0], pair[1], got)
			}
		}
	}
}

func TestAgreement(t *testing.T) {
	if got := Agreement(8, 8.2); math.Abs(got-0.98) > 1e-9 {
		t.Errorf("Agreement(8, 8.2) = %v, want 0.98", got)
	}
	if got := Agreement(0, 10); got != 0 {
		t.Errorf("Agreement(0, 10) = %v, want 0", got)
	}
	if got := Agreement(5, 5); got != 1 {
		t.Errorf("Agreement(5, 5) = %v, want 1", got)
	}
}
