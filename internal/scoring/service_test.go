// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/events"
	"github.com/cinefuzz/cinefuzz/internal/fuzzy"
	"github.com/cinefuzz/cinefuzz/internal/models"
	"github.com/cinefuzz/cinefuzz/internal/predictor"
)

// staticPredictor returns a fixed score, or unavailability when down.
type staticPredictor struct {
	score float64
	down  bool

	mu    sync.Mutex
	calls int
}

func (p *staticPredictor) Predict(context.Context, models.PreferenceProfile, models.ItemDescriptor, *models.WatchHistory) (float64, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.down {
		return 0, predictor.ErrUnavailable
	}
	return p.score, nil
}

func (p *staticPredictor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// captureSink records published events.
type captureSink struct {
	mu     sync.Mutex
	events []events.ScoreEvent
}

func (s *captureSink) Publish(ev events.ScoreEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newTestService(pred predictor.Predictor, sink EventSink) *Service {
	logger := zerolog.Nop()
	engine := fuzzy.NewEngine(logger)
	cache := NewResultCache(CacheConfig{Capacity: 100, TTL: time.Minute}, logger)
	return NewService(engine, pred, cache, sink, ServiceConfig{}, logger)
}

func testItem() models.ItemDescriptor {
	return models.ItemDescriptor{
		Title:      "Heat",
		Genres:     []string{"Action", "Thriller"},
		Popularity: 85,
		Year:       1995,
	}
}

func testPrefs() models.PreferenceProfile {
	return models.PreferenceProfile{"action": 9}
}

func TestScoreOneMissThenHit(t *testing.T) {
	pred := &staticPredictor{score: 8}
	svc := newTestService(pred, nil)
	ctx := context.Background()

	first, err := svc.ScoreOne(ctx, testPrefs(), testItem(), nil, "")
	if err != nil {
		t.Fatalf("ScoreOne() error: %v", err)
	}
	if first.FromCache {
		t.Error("first call against a cold cache reported from_cache")
	}

	second, err := svc.ScoreOne(ctx, testPrefs(), testItem(), nil, "")
	if err != nil {
		t.Fatalf("ScoreOne() error: %v", err)
	}
	if !second.FromCache {
		t.Error("second identical call did not hit the cache")
	}

	// Identical bundles, timing and cache tag aside.
	if first.FuzzyScore != second.FuzzyScore ||
		first.HybridScore != second.HybridScore ||
		first.Strategy != second.Strategy ||
		first.Explanation != second.Explanation {
		t.Errorf("cached bundle differs from computed bundle:\n%+v\n%+v", first, second)
	}
	if pred.callCount() != 1 {
		t.Errorf("predictor called %d times, want 1", pred.callCount())
	}
}

func TestScoreOneScoresBounded(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 8}, nil)
	got, err := svc.ScoreOne(context.Background(), testPrefs(), testItem(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	for name, v := range map[string]float64{
		"fuzzy":  got.FuzzyScore,
		"hybrid": got.HybridScore,
	} {
		if v < 0 || v > 10 {
			t.Errorf("%s score %v outside [0,10]", name, v)
		}
	}
	if got.ANNScore == nil || *got.ANNScore != 8 {
		t.Errorf("ann score = %v, want 8", got.ANNScore)
	}
	if got.Agreement == nil {
		t.Error("agreement missing with predictor available")
	}
}

func TestScoreOnePredictorUnavailable(t *testing.T) {
	svc := newTestService(&staticPredictor{down: true}, nil)
	got, err := svc.ScoreOne(context.Background(), testPrefs(), testItem(), nil, "")
	if err != nil {
		t.Fatalf("degraded path surfaced an error: %v", err)
	}
	if got.ANNScore != nil {
		t.Error("ann score present despite unavailable predictor")
	}
	if got.HybridScore != got.FuzzyScore {
		t.Errorf("hybrid %v != fuzzy %v in fuzzy-only mode", got.HybridScore, got.FuzzyScore)
	}
	if got.Strategy == "" {
		t.Error("strategy field empty in degraded mode")
	}
	if got.Agreement != nil {
		t.Error("agreement should be absent without an ANN score")
	}
}

func TestScoreOneMissingTitle(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 5}, nil)
	_, err := svc.ScoreOne(context.Background(), testPrefs(), models.ItemDescriptor{}, nil, "")
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("error = %v, want ErrMissingTitle", err)
	}
}

func TestScoreOneUnknownStrategyFallsBack(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 4}, nil)
	got, err := svc.ScoreOne(context.Background(), testPrefs(), testItem(), nil, "quantum_blend")
	if err != nil {
		t.Fatal(err)
	}
	if got.Strategy != "weighted_average" {
		t.Errorf("strategy = %q, want weighted_average fallback", got.Strategy)
	}
}

func TestScoreOneEmitsEvents(t *testing.T) {
	sink := &captureSink{}
	svc := newTestService(&staticPredictor{score: 8}, sink)
	ctx := context.Background()

	if _, err := svc.ScoreOne(ctx, testPrefs(), testItem(), nil, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ScoreOne(ctx, testPrefs(), testItem(), nil, ""); err != nil {
		t.Fatal(err)
	}

	if sink.count() != 2 {
		t.Fatalf("published %d events, want 2", sink.count())
	}
	if sink.events[0].CacheHit {
		t.Error("first event should record a miss")
	}
	if !sink.events[1].CacheHit {
		t.Error("second event should record a hit")
	}
}

func TestScoreBatchOrderPreserved(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 6}, nil)
	ctx := context.Background()

	items := []models.ItemDescriptor{
		{Title: "Heat", Genres: []string{"Action"}, Popularity: 85},
		{Title: "Amelie", Genres: []string{"Romance", "Comedy"}, Popularity: 60},
		{Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}, Popularity: 90},
	}

	// Warm the cache with the middle item only.
	if _, err := svc.ScoreOne(ctx, testPrefs(), items[1], nil, ""); err != nil {
		t.Fatal(err)
	}

	results, err := svc.ScoreBatch(ctx, testPrefs(), items, nil, "")
	if err != nil {
		t.Fatalf("ScoreBatch() error: %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Title != items[i].Title {
			t.Errorf("result %d = %q, want %q (order violated)", i, r.Title, items[i].Title)
		}
	}
	if !results[1].FromCache {
		t.Error("pre-warmed item not served from cache")
	}
	if results[0].FromCache || results[2].FromCache {
		t.Error("cold items wrongly tagged from_cache")
	}
}

func TestScoreBatchSharedElapsed(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 6}, nil)
	items := []models.ItemDescriptor{
		{Title: "Heat", Genres: []string{"Action"}, Popularity: 85},
		{Title: "Alien", Genres: []string{"Horror"}, Popularity: 90},
	}
	results, err := svc.ScoreBatch(context.Background(), testPrefs(), items, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ElapsedMS != results[1].ElapsedMS {
		t.Errorf("batch entries carry different elapsed times: %v vs %v", results[0].ElapsedMS, results[1].ElapsedMS)
	}
	if results[0].RequestID == "" || results[0].RequestID == results[1].RequestID {
		t.Error("batch entries should carry distinct request ids")
	}
}

func TestScoreBatchRepopulatesCache(t *testing.T) {
	pred := &staticPredictor{score: 6}
	svc := newTestService(pred, nil)
	ctx := context.Background()
	items := []models.ItemDescriptor{
		{Title: "Heat", Genres: []string{"Action"}, Popularity: 85},
		{Title: "Alien", Genres: []string{"Horror"}, Popularity: 90},
	}

	if _, err := svc.ScoreBatch(ctx, testPrefs(), items, nil, ""); err != nil {
		t.Fatal(err)
	}
	callsAfterFirst := pred.callCount()

	results, err := svc.ScoreBatch(ctx, testPrefs(), items, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if !r.FromCache {
			t.Errorf("result %d not served from cache on second batch", i)
		}
	}
	if pred.callCount() != callsAfterFirst {
		t.Error("second batch recomputed despite warm cache")
	}
}

func TestScoreBatchMissingTitleFailsBatch(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 6}, nil)
	items := []models.ItemDescriptor{
		{Title: "Heat", Genres: []string{"Action"}, Popularity: 85},
		{Title: ""},
	}
	_, err := svc.ScoreBatch(context.Background(), testPrefs(), items, nil, "")
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("error = %v, want ErrMissingTitle", err)
	}
}

func TestScoreOneConcurrent(t *testing.T) {
	svc := newTestService(&staticPredictor{score: 7}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item := testItem()
			if i%2 == 0 {
				item.Title = "Alien"
			}
			if _, err := svc.ScoreOne(ctx, testPrefs(), item, nil, ""); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent ScoreOne error: %v", err)
	}
}
