// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"math"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

// Strategy selects how the fuzzy and ANN opinions are blended into one
// hybrid score. It is a closed enum: unknown identifiers are mapped to
// StrategyWeightedAverage at parse time, so dispatch never hits an
// unhandled case.
type Strategy int

const (
	// StrategyAdaptive picks its blend from how much the two opinions
	// agree. This is the default.
	StrategyAdaptive Strategy = iota
	// StrategyWeightedAverage applies the configured fuzzy weight
	// (0.6 unless overridden).
	StrategyWeightedAverage
	// StrategyFuzzyDominant fixes the blend at 0.7 fuzzy / 0.3 ann.
	StrategyFuzzyDominant
	// StrategyANNDominant fixes the blend at 0.3 fuzzy / 0.7 ann.
	StrategyANNDominant
	// StrategyConfidenceWeighted derives weights from watch-history
	// depth and genre match.
	StrategyConfidenceWeighted
)

// DefaultFuzzyWeight is the fuzzy share used by the weighted-average
// strategy when no weight is configured.
const DefaultFuzzyWeight = 0.6

// ParseStrategy resolves a strategy identifier. The empty string means
// "use the default" (adaptive); anything unrecognized falls back to
// weighted average, never an error.
func ParseStrategy(id string) Strategy {
	switch id {
	case "":
		return StrategyAdaptive
	case "adaptive":
		return StrategyAdaptive
	case "weighted_average":
		return StrategyWeightedAverage
	case "fuzzy_dominant":
		return StrategyFuzzyDominant
	case "ann_dominant":
		return StrategyANNDominant
	case "confidence_weighted":
		return StrategyConfidenceWeighted
	default:
		return StrategyWeightedAverage
	}
}

// KnownStrategy reports whether an identifier names a strategy without
// applying the fallback. Used by the API layer to describe, not to
// reject.
func KnownStrategy(id string) bool {
	switch id {
	case "adaptive", "weighted_average", "fuzzy_dominant", "ann_dominant", "confidence_weighted":
		return true
	default:
		return false
	}
}

// Strategies lists every identifier in a stable order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyAdaptive,
		StrategyWeightedAverage,
		StrategyFuzzyDominant,
		StrategyANNDominant,
		StrategyConfidenceWeighted,
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyAdaptive:
		return "adaptive"
	case StrategyWeightedAverage:
		return "weighted_average"
	case StrategyFuzzyDominant:
		return "fuzzy_dominant"
	case StrategyANNDominant:
		return "ann_dominant"
	case StrategyConfidenceWeighted:
		return "confidence_weighted"
	default:
		return "weighted_average"
	}
}

// Description returns the human-readable summary served by the
// strategies listing endpoint.
func (s Strategy) Description() string {
	switch s {
	case StrategyAdaptive:
		return "Blend chosen from fuzzy/ANN agreement; the default"
	case StrategyWeightedAverage:
		return "Fixed configurable blend, 60% fuzzy by default"
	case StrategyFuzzyDominant:
		return "70% fuzzy, 30% ANN"
	case StrategyANNDominant:
		return "30% fuzzy, 70% ANN"
	case StrategyConfidenceWeighted:
		return "Weights derived from watch-history depth and genre match"
	default:
		return ""
	}
}

// CombinationContext carries the per-request facts some strategies
// consult. Built and discarded per evaluation.
type CombinationContext struct {
	FuzzyWeight float64
	GenreMatch  float64
	History     *models.WatchHistory
}

// Combine blends the two bounded opinions into a hybrid score in
// [0,10]. Both inputs are assumed already clamped; the output is
// clamped anyway since every blend is a convex combination of bounded
// values plus renormalization.
func (s Strategy) Combine(fuzzyScore, annScore float64, cc CombinationContext) float64 {
	var hybrid float64
	switch s {
	case StrategyAdaptive:
		hybrid = combineAdaptive(fuzzyScore, annScore, cc)
	case StrategyFuzzyDominant:
		hybrid = fuzzyScore*0.7 + annScore*0.3
	case StrategyANNDominant:
		hybrid = fuzzyScore*0.3 + annScore*0.7
	case StrategyConfidenceWeighted:
		hybrid = combineConfidenceWeighted(fuzzyScore, annScore, cc)
	default:
		w := cc.FuzzyWeight
		if w <= 0 || w > 1 {
			w = DefaultFuzzyWeight
		}
		hybrid = fuzzyScore*w + annScore*(1-w)
	}
	return models.ClampScore(hybrid)
}

// Agreement measures how close the two opinions are, in [0,1].
func Agreement(fuzzyScore, annScore float64) float64 {
	return 1 - math.Abs(fuzzyScore-annScore)/10
}

func combineAdaptive(fuzzyScore, annScore float64, cc CombinationContext) float64 {
	agreement := Agreement(fuzzyScore, annScore)
	switch {
	case agreement > 0.8:
		return (fuzzyScore + annScore) / 2
	case agreement < 0.4:
		return combineConfidenceWeighted(fuzzyScore, annScore, cc)
	default:
		return fuzzyScore*0.6 + annScore*0.4
	}
}

func combineConfidenceWeighted(fuzzyScore, annScore float64, cc CombinationContext) float64 {
	fw, aw := 0.5, 0.5

	watchCount := 0
	if cc.History != nil {
		watchCount = cc.History.WatchCount
	}
	if watchCount > 50 {
		fw, aw = 0.3, 0.7
	} else if watchCount < 10 {
		fw, aw = 0.7, 0.3
	}

	if cc.GenreMatch > 0.8 {
		fw += 0.1
		aw -= 0.1
	} else if cc.GenreMatch < 0.3 {
		fw -= 0.1
		aw += 0.1
	}

	sum := fw + aw
	fw, aw = fw/sum, aw/sum
	return fuzzyScore*fw + annScore*aw
}
