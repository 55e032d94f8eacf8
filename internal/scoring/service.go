// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/events"
	"github.com/cinefuzz/cinefuzz/internal/fuzzy"
	"github.com/cinefuzz/cinefuzz/internal/metrics"
	"github.com/cinefuzz/cinefuzz/internal/models"
	"github.com/cinefuzz/cinefuzz/internal/predictor"
)

// EventSink receives one telemetry event per evaluation. A nil sink
// disables telemetry without affecting scoring.
type EventSink interface {
	Publish(ev events.ScoreEvent)
}

// ServiceConfig holds the scoring pipeline settings.
type ServiceConfig struct {
	// DefaultStrategy applies when a request names none. Default:
	// adaptive.
	DefaultStrategy string
	// FuzzyWeight is the fuzzy share for the weighted-average
	// strategy. Default: 0.6.
	FuzzyWeight float64
	// Cache bounds the result cache.
	Cache CacheConfig
}

// Service runs the full hybrid evaluation pipeline. It is safe for
// concurrent use: the engine and strategies are stateless, and the
// cache serializes its own access.
type Service struct {
	engine          *fuzzy.Engine
	predictor       predictor.Predictor
	cache           *ResultCache
	sink            EventSink
	defaultStrategy Strategy
	fuzzyWeight     float64
	logger          zerolog.Logger
}

// NewService wires the pipeline together.
func NewService(engine *fuzzy.Engine, pred predictor.Predictor, cache *ResultCache, sink EventSink, cfg ServiceConfig, logger zerolog.Logger) *Service {
	weight := cfg.FuzzyWeight
	if weight <= 0 || weight > 1 {
		weight = DefaultFuzzyWeight
	}
	return &Service{
		engine:          engine,
		predictor:       pred,
		cache:           cache,
		sink:            sink,
		defaultStrategy: ParseStrategy(cfg.DefaultStrategy),
		fuzzyWeight:     weight,
		logger:          logger.With().Str("component", "scoring-service").Logger(),
	}
}

// ScoreOne evaluates a single item, consulting the cache first. The
// only caller-visible error is a missing item title, which makes a
// fingerprint impossible.
func (s *Service) ScoreOne(ctx context.Context, prefs models.PreferenceProfile, item models.ItemDescriptor, history *models.WatchHistory, strategyID string) (models.ResultBundle, error) {
	start := time.Now()
	strategy := s.resolveStrategy(strategyID)

	fp, err := Fingerprint(prefs, item, strategy)
	if err != nil {
		return models.ResultBundle{}, err
	}

	if bundle, ok := s.cache.Get(fp); ok {
		bundle.FromCache = true
		bundle.ElapsedMS = msSince(start)
		s.observe(bundle, "single", true, 0, 0)
		return bundle, nil
	}

	bundle, fuzzyMS, annMS := s.compute(ctx, prefs, item, history, strategy)
	s.cache.Put(fp, bundle)

	bundle.ElapsedMS = msSince(start)
	s.observe(bundle, "single", false, fuzzyMS, annMS)
	return bundle, nil
}

// ScoreBatch evaluates an ordered item list. Hits are served from the
// cache, misses are computed sequentially and written back, and the
// output preserves input order. All entries share one batch-level
// elapsed time.
func (s *Service) ScoreBatch(ctx context.Context, prefs models.PreferenceProfile, items []models.ItemDescriptor, history *models.WatchHistory, strategyID string) ([]models.ResultBundle, error) {
	start := time.Now()
	strategy := s.resolveStrategy(strategyID)

	results := make([]models.ResultBundle, len(items))
	fingerprints := make([]string, len(items))

	type miss struct {
		index int
		fp    string
	}
	var misses []miss

	// Partition into hits and misses, preserving original indices.
	for i, item := range items {
		fp, err := Fingerprint(prefs, item, strategy)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		fingerprints[i] = fp
		if bundle, ok := s.cache.Get(fp); ok {
			bundle.FromCache = true
			results[i] = bundle
			continue
		}
		misses = append(misses, miss{index: i, fp: fp})
	}

	// Compute misses sequentially; identical items within one batch
	// each compute once here and dedupe via the cache afterwards.
	type computed struct {
		index   int
		fuzzyMS float64
		annMS   float64
	}
	timings := make([]computed, 0, len(misses))
	for _, m := range misses {
		bundle, fuzzyMS, annMS := s.compute(ctx, prefs, items[m.index], history, strategy)
		s.cache.Put(m.fp, bundle)
		results[m.index] = bundle
		timings = append(timings, computed{index: m.index, fuzzyMS: fuzzyMS, annMS: annMS})
	}

	elapsed := msSince(start)
	batchID := uuid.New().String()
	for i := range results {
		results[i].ElapsedMS = elapsed
		results[i].RequestID = fmt.Sprintf("%s-%d", batchID, i)
	}

	for i := range results {
		s.observe(results[i], "batch", results[i].FromCache, 0, 0)
	}
	for _, c := range timings {
		metrics.ScoreLatency.WithLabelValues("fuzzy").Observe(c.fuzzyMS / 1000)
		if c.annMS > 0 {
			metrics.ScoreLatency.WithLabelValues("ann").Observe(c.annMS / 1000)
		}
	}

	s.logger.Debug().
		Int("items", len(items)).
		Int("misses", len(misses)).
		Float64("elapsed_ms", elapsed).
		Msg("batch scored")
	return results, nil
}

// CacheStats exposes the cache snapshot for the stats endpoints.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

// ClearCache drops every cached bundle.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Info().Msg("result cache cleared")
}

// DefaultStrategy reports the strategy applied when requests name
// none.
func (s *Service) DefaultStrategy() Strategy {
	return s.defaultStrategy
}

// resolveStrategy maps a request's strategy id onto the closed enum.
// Empty means the configured default; unknown ids fall back to
// weighted average per the dispatcher contract.
func (s *Service) resolveStrategy(id string) Strategy {
	if id == "" {
		return s.defaultStrategy
	}
	if !KnownStrategy(id) {
		s.logger.Debug().Str("strategy", id).Msg("unknown strategy id, using weighted_average")
	}
	return ParseStrategy(id)
}

// compute runs one full inference + prediction + combination cycle.
// It never fails: predictor trouble degrades to fuzzy-only.
func (s *Service) compute(ctx context.Context, prefs models.PreferenceProfile, item models.ItemDescriptor, history *models.WatchHistory, strategy Strategy) (models.ResultBundle, float64, float64) {
	genreMatch := GenreMatch(prefs, item.Genres)
	sentiment := WatchSentiment(history)

	fuzzyStart := time.Now()
	fuzzyScore := s.engine.Evaluate(fuzzy.Inputs{
		Preferences:    prefs,
		Presence:       GenrePresence(item.Genres),
		Popularity:     item.Popularity,
		GenreMatch:     genreMatch,
		WatchSentiment: sentiment,
	})
	fuzzyMS := msSince(fuzzyStart)

	bundle := models.ResultBundle{
		Title:      item.Title,
		FuzzyScore: fuzzyScore,
		Strategy:   strategy.String(),
		GenreMatch: genreMatch,
	}

	annStart := time.Now()
	annScore, annErr := s.predictor.Predict(ctx, prefs, item, history)
	annMS := msSince(annStart)

	if annErr != nil {
		if !errors.Is(annErr, predictor.ErrUnavailable) {
			s.logger.Warn().Err(annErr).Str("title", item.Title).Msg("predictor error, falling back to fuzzy-only")
		}
		bundle.HybridScore = fuzzyScore
		bundle.Confidence = fuzzyOnlyConfidence(genreMatch)
		bundle.Explanation = fmt.Sprintf("fuzzy %.2f only, ANN unavailable (genre match %.2f)", fuzzyScore, genreMatch)
		return bundle, fuzzyMS, 0
	}

	cc := CombinationContext{
		FuzzyWeight: s.fuzzyWeight,
		GenreMatch:  genreMatch,
		History:     history,
	}
	hybrid := strategy.Combine(fuzzyScore, annScore, cc)
	agreement := Agreement(fuzzyScore, annScore)

	bundle.ANNScore = &annScore
	bundle.HybridScore = hybrid
	bundle.Agreement = &agreement
	bundle.Confidence = hybridConfidence(agreement, genreMatch)
	bundle.Explanation = fmt.Sprintf("fuzzy %.2f + ANN %.2f via %s (genre match %.2f)", fuzzyScore, annScore, strategy, genreMatch)
	return bundle, fuzzyMS, annMS
}

// hybridConfidence blends opinion agreement with genre evidence into a
// rough [0,1] certainty figure for the bundle.
func hybridConfidence(agreement, genreMatch float64) float64 {
	return models.ClampUnit(0.6*agreement + 0.4*genreMatch)
}

// fuzzyOnlyConfidence caps certainty when only one opinion exists.
func fuzzyOnlyConfidence(genreMatch float64) float64 {
	return models.ClampUnit(0.3 + 0.4*genreMatch)
}

func (s *Service) observe(bundle models.ResultBundle, mode string, cacheHit bool, fuzzyMS, annMS float64) {
	cacheLabel := "miss"
	if cacheHit {
		cacheLabel = "hit"
	}
	metrics.ScoreRequests.WithLabelValues(mode, cacheLabel).Inc()
	metrics.StrategyUsage.WithLabelValues(bundle.Strategy).Inc()
	metrics.ScoreLatency.WithLabelValues("total").Observe(bundle.ElapsedMS / 1000)
	if !cacheHit {
		metrics.FuzzyScores.Observe(bundle.FuzzyScore)
		metrics.HybridScores.Observe(bundle.HybridScore)
		if mode == "single" {
			metrics.ScoreLatency.WithLabelValues("fuzzy").Observe(fuzzyMS / 1000)
			if annMS > 0 {
				metrics.ScoreLatency.WithLabelValues("ann").Observe(annMS / 1000)
			}
		}
	}

	if s.sink == nil {
		return
	}
	s.sink.Publish(events.ScoreEvent{
		Timestamp:   time.Now(),
		RequestID:   bundle.RequestID,
		Strategy:    bundle.Strategy,
		FuzzyScore:  bundle.FuzzyScore,
		ANNScore:    bundle.ANNScore,
		HybridScore: bundle.HybridScore,
		CacheHit:    cacheHit,
		ElapsedMS:   bundle.ElapsedMS,
		FuzzyMS:     fuzzyMS,
		ANNMS:       annMS,
	})
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
