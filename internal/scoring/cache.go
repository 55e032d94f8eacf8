// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package scoring

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinefuzz/cinefuzz/internal/metrics"
	"github.com/cinefuzz/cinefuzz/internal/models"
)

// CacheConfig bounds the result cache.
type CacheConfig struct {
	// Capacity is the maximum number of entries. Default: 1000.
	Capacity int
	// TTL is how long an entry stays servable. Default: 5m.
	TTL time.Duration
}

// DefaultCacheConfig returns the production defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Capacity: 1000,
		TTL:      5 * time.Minute,
	}
}

type cacheEntry struct {
	bundle     models.ResultBundle
	insertedAt time.Time
}

// ResultCache stores finished bundles keyed by fingerprint.
//
// Eviction is FIFO by insertion time: reads never refresh an entry's
// position, so under pressure the oldest inserted entry goes first
// regardless of how recently it was hit. Expired entries are evicted
// lazily when read. One mutex guards every map operation; the critical
// section never computes a score.
type ResultCache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	capacity int
	ttl      time.Duration

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	// now is swappable for TTL tests.
	now func() time.Time

	logger zerolog.Logger
}

// NewResultCache builds a cache with the given bounds; zero values are
// replaced by defaults.
func NewResultCache(cfg CacheConfig, logger zerolog.Logger) *ResultCache {
	def := DefaultCacheConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	return &ResultCache{
		entries:  make(map[string]cacheEntry, cfg.Capacity),
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		now:      time.Now,
		logger:   logger.With().Str("component", "result-cache").Logger(),
	}
}

// Get returns the cached bundle for a fingerprint. A stale entry is
// deleted and reported as a miss. Any internal fault also degrades to
// a miss; the caller recomputes and the cache heals on the next Put.
func (c *ResultCache) Get(fingerprint string) (bundle models.ResultBundle, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn().Interface("panic", r).Msg("cache read fault, degrading to miss")
			bundle, ok = models.ResultBundle{}, false
		}
	}()

	c.mu.Lock()
	entry, found := c.entries[fingerprint]
	if found && c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, fingerprint)
		found = false
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(size))
	if !found {
		c.misses.Add(1)
		metrics.CacheMisses.Inc()
		return models.ResultBundle{}, false
	}
	c.hits.Add(1)
	metrics.CacheHits.Inc()
	return entry.bundle, true
}

// Put inserts a bundle, evicting the oldest-inserted entry first when
// at capacity. Overwrites replace the entry wholesale and refresh its
// insertion time.
func (c *ResultCache) Put(fingerprint string, bundle models.ResultBundle) {
	c.mu.Lock()
	if _, exists := c.entries[fingerprint]; !exists && len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}
	c.entries[fingerprint] = cacheEntry{bundle: bundle, insertedAt: c.now()}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(size))
}

// evictOldestLocked removes the entry with the smallest insertion
// timestamp. Caller holds c.mu.
func (c *ResultCache) evictOldestLocked() {
	var (
		oldestKey  string
		oldestTime time.Time
		first      = true
	)
	for k, e := range c.entries {
		if first || e.insertedAt.Before(oldestTime) {
			oldestKey, oldestTime, first = k, e.insertedAt, false
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.evictions.Add(1)
		metrics.CacheEvictions.Inc()
	}
}

// Len reports the current entry count.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry. Counters survive; they describe lifetime
// traffic, not current contents.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry, c.capacity)
	c.mu.Unlock()
	metrics.CacheEntries.Set(0)
}

// CacheStats is a point-in-time snapshot for the stats endpoints.
type CacheStats struct {
	Size      int     `json:"size"`
	Capacity  int     `json:"capacity"`
	TTLMS     int64   `json:"ttl_ms"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// Stats snapshots the cache counters.
func (c *ResultCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{
		Size:      c.Len(),
		Capacity:  c.capacity,
		TTLMS:     c.ttl.Milliseconds(),
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   rate,
	}
}
