package story

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

// CacheStats is a read-only snapshot for operational introspection.
type CacheStats struct {
	Size    int     `json:"size"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type cacheEntry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// ContextCache memoizes expensive reads with a per-entry TTL and supports
// prefix invalidation. One instance is owned by one Engine; the background
// sweeper is started and stopped with the engine's lifecycle.
type ContextCache struct {
	log *logger.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry

	hits   atomic.Uint64
	misses atomic.Uint64

	sweepOnce sync.Once
	sweepStop chan struct{}
	sweepDone chan struct{}
}

func NewContextCache(baseLog *logger.Logger) *ContextCache {
	return &ContextCache{
		log:     baseLog.With("component", "ContextCache"),
		entries: map[string]cacheEntry{},
	}
}

// Get returns the cached value when present and inside its TTL. An expired
// entry is evicted and counted as a miss; no entry is ever served past TTL.
func (c *ContextCache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if e.expired(now) {
		c.mu.Lock()
		// Re-check under the write lock: a writer may have refreshed it.
		if cur, still := c.entries[key]; still && cur.expired(now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, overwriting any previous entry.
func (c *ContextCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: time.Now(), ttl: ttl}
	c.mu.Unlock()
}

// InvalidatePrefix deletes every key starting with prefix and returns how
// many entries were dropped.
func (c *ContextCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// SweepExpired evicts every entry past its TTL, bounding memory growth
// between reads.
func (c *ContextCache) SweepExpired() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *ContextCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{Size: size, Hits: hits, Misses: misses, HitRate: rate}
}

// StartSweeper runs SweepExpired on a ticker until StopSweeper is called.
func (c *ContextCache) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	c.sweepOnce.Do(func() {
		c.sweepStop = make(chan struct{})
		c.sweepDone = make(chan struct{})
		go func() {
			defer close(c.sweepDone)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-c.sweepStop:
					return
				case <-ticker.C:
					if n := c.SweepExpired(); n > 0 {
						c.log.Debug("cache sweep evicted entries", "count", n)
					}
				}
			}
		}()
	})
}

func (c *ContextCache) StopSweeper() {
	if c.sweepStop == nil {
		return
	}
	select {
	case <-c.sweepStop:
	default:
		close(c.sweepStop)
	}
	<-c.sweepDone
}
