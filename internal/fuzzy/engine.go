// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package fuzzy

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/models"
)

// NeutralScore is returned whenever the engine cannot produce a
// meaningful score: no rule fired, or an internal arithmetic fault.
const NeutralScore = 5.0

// Inputs carries the crisp facts for one evaluation. Preferences may
// omit genres (defaulted to neutral); out-of-range values are clamped.
type Inputs struct {
	Preferences    models.PreferenceProfile
	Presence       map[string]bool
	Popularity     float64
	GenreMatch     float64
	WatchSentiment float64
}

// Engine runs Mamdani inference over the fixed rule base. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	vars     map[string]Variable
	rules    []Rule
	output   Variable
	universe []float64
	logger   zerolog.Logger
}

// NewEngine builds the variables, the 47-rule table and the
// discretized output universe.
func NewEngine(logger zerolog.Logger) *Engine {
	vars := buildVariables()
	out := vars[VarOutput]

	// Integer steps over [0,10]; centroid quality at this granularity
	// matches the reference behavior of the system.
	universe := make([]float64, 0, 11)
	for u := out.Min; u <= out.Max; u++ {
		universe = append(universe, u)
	}

	return &Engine{
		vars:     vars,
		rules:    buildRules(),
		output:   out,
		universe: universe,
		logger:   logger.With().Str("component", "fuzzy-engine").Logger(),
	}
}

// RuleCount reports the size of the rule table.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Evaluate maps crisp inputs to one score in [0,10]. It never returns
// an error: malformed numerics are clamped, an arithmetic fault or an
// empty aggregate degrades to NeutralScore.
func (e *Engine) Evaluate(in Inputs) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Msg("inference fault, substituting neutral score")
			score = NeutralScore
		}
	}()

	facts := e.facts(in)

	// Fire every rule and keep, per output term, the strongest
	// activation. Min-implication then clips the term's shape at that
	// strength, so only the max per term matters for aggregation.
	activation := make(map[string]float64, len(e.output.Terms))
	for _, r := range e.rules {
		strength := math.MaxFloat64
		for _, c := range r.When {
			d := e.vars[c.Variable].Membership(facts[c.Variable], c.Term)
			if d < strength {
				strength = d
			}
		}
		if strength > activation[r.Then] {
			activation[r.Then] = strength
		}
	}

	// Aggregate by pointwise max of the clipped shapes, centroid over
	// the discretized universe.
	var num, den float64
	for _, u := range e.universe {
		var mu float64
		for term, s := range activation {
			m := e.output.Membership(u, term)
			if s < m {
				m = s
			}
			if m > mu {
				mu = m
			}
		}
		num += u * mu
		den += mu
	}

	if den < 1e-9 {
		e.logger.Debug().Msg("no rule fired, returning neutral score")
		return NeutralScore
	}

	score = num / den
	if math.IsNaN(score) || math.IsInf(score, 0) {
		e.logger.Warn().Msg("defuzzification produced a non-finite value, substituting neutral score")
		return NeutralScore
	}
	return models.ClampScore(score)
}

// facts assembles the crisp value for every variable the rule base can
// reference.
func (e *Engine) facts(in Inputs) map[string]float64 {
	facts := make(map[string]float64, len(e.vars))
	for _, g := range models.CanonicalGenres {
		facts[PrefVar(g)] = in.Preferences.Value(g)
		if in.Presence[g] {
			facts[PresenceVar(g)] = 1
		} else {
			facts[PresenceVar(g)] = 0
		}
	}
	facts[VarPopularity] = models.ClampPopularity(in.Popularity)
	facts[VarGenreMatch] = models.ClampUnit(in.GenreMatch)
	facts[VarWatchSentiment] = models.ClampScore(in.WatchSentiment)
	return facts
}
