// Package ttlcache is an in-memory key/value cache with a fixed per-entry TTL
// and hit/miss statistics.
package ttlcache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/reapenglish/ttlcache/api"
	"github.com/reapenglish/ttlcache/config"
	"github.com/reapenglish/ttlcache/engine"
	"github.com/reapenglish/ttlcache/eviction"
	"github.com/reapenglish/ttlcache/expiration"
	"github.com/reapenglish/ttlcache/store"
	"github.com/reapenglish/ttlcache/types"
)

// NotFoundTTL is what TTL returns for a key that is absent or expired.
const NotFoundTTL time.Duration = -2

var _ api.Cache = (*TTLCache)(nil)

/*
TTLCache is an in-memory key/value cache where every entry lives for a fixed
TTL after it was last set.

One mutex guards the entries, the eviction policy and the counters together,
and is held for a single operation only. Metrics, the removal listener and
loaders are always called after it is released.

Expired entries are dropped lazily by Get and in bulk by SweepExpired. The
cache starts no goroutines; schedule SweepExpired with sweeper.Sweeper.
*/
type TTLCache struct {
	mu sync.Mutex

	// engine holds the rules: clock, expiration, metrics, listener, logger.
	engine *engine.CacheEngine

	// store holds the entries.
	store store.Store

	// eviction is nil unless a capacity bound is configured.
	eviction   eviction.Policy
	maxEntries int

	hits        int64
	misses      int64
	expirations int64
	evictions   int64

	closed bool

	// sf collapses concurrent GetOrLoad calls for the same key into one load.
	sf singleflight.Group
}

// NewTTLCache creates a cache whose entries expire ttl after they were set.
// A ttl <= 0 disables expiration.
func NewTTLCache(ttl time.Duration, opts ...Option) *TTLCache {
	o := applyOptions(opts...)

	var exp expiration.Strategy
	if ttl > 0 {
		exp = &expiration.ExpireAfterWrite{TTL: ttl}
	}

	c := &TTLCache{
		engine: engine.NewCacheEngine(o.clock, exp, o.metrics, o.listener, o.logger),
		store:  store.New(o.index),
	}
	if o.maxEntries > 0 {
		policy := o.policy
		if !policy.Valid() {
			o.logger.Warn("unknown eviction policy, using lru", zap.String("policy", string(policy)))
			policy = eviction.LRU
		}
		c.eviction = eviction.NewEvictionPolicy(policy)
		c.maxEntries = o.maxEntries
	}
	return c
}

// NewFromConfig validates cfg and builds a cache from it. opts are applied
// after the settings taken from cfg.
func NewFromConfig(cfg config.Config, opts ...Option) (*TTLCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new cache")
	}
	base := []Option{
		WithMaxEntries(cfg.MaxEntries, cfg.EvictionPolicy),
		withIndex(cfg.Index),
	}
	return NewTTLCache(cfg.TTL, append(base, opts...)...), nil
}

/*
Get retrieves a value from the cache.
*/
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, false
	}

	ent, ok := c.store.Get(key)
	if ok && !c.engine.IsExpired(ent, c.engine.Now()) {
		c.hits++
		if c.eviction != nil {
			c.eviction.OnGet(key)
		}
		c.mu.Unlock()

		c.engine.Metrics.Hit()
		return ent.Value, true
	}

	var removals []engine.Removal
	if ok {
		// present but stale: drop it now instead of waiting for a sweep
		c.removeLocked(key)
		c.expirations++
		removals = append(removals, engine.Removal{Entry: ent, Reason: types.Expired})
	}
	c.misses++
	size := c.store.Len()
	c.mu.Unlock()

	c.engine.Metrics.Miss()
	if len(removals) > 0 {
		c.engine.Metrics.Size(size)
		c.engine.Notify(removals)
	}
	return nil, false
}

/*
Set stores value under key with StoredAt = now, replacing any previous entry.
*/
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var removals []engine.Removal
	if _, exists := c.store.Get(key); !exists && c.eviction != nil && c.store.Len() >= c.maxEntries {
		if victim, ok := c.eviction.Evict(); ok {
			if ent, ok := c.store.Delete(victim); ok {
				c.evictions++
				removals = append(removals, engine.Removal{Entry: ent, Reason: types.Evicted})
			}
		}
	}

	c.store.Put(&types.CacheEntry{
		Key:      key,
		Value:    value,
		StoredAt: c.engine.Now(),
	})
	if c.eviction != nil {
		c.eviction.OnPut(key)
	}
	size := c.store.Len()
	c.mu.Unlock()

	c.engine.Metrics.Size(size)
	c.engine.Notify(removals)
}

// Delete removes key from the cache. Deleting a missing key is a no-op.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ent, ok := c.removeLocked(key)
	size := c.store.Len()
	c.mu.Unlock()

	if ok {
		c.engine.Metrics.Size(size)
		c.engine.Notify([]engine.Removal{{Entry: ent, Reason: types.Deleted}})
	}
}

// Clear removes every entry and resets hits, misses and the other counters.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	n := c.store.Len()
	removals := c.resetLocked()
	c.mu.Unlock()

	c.engine.Logger.Debug("cache cleared", zap.Int("entries", n))
	c.engine.Metrics.Size(0)
	c.engine.Notify(removals)
}

// Stats returns a snapshot of the cache counters.
func (c *TTLCache) Stats() types.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.NewStatistics(c.hits, c.misses, c.store.Len(), c.expirations, c.evictions)
}

/*
SweepExpired removes every entry whose age exceeds the TTL and returns how
many were removed. It leaves hits and misses alone.
*/
func (c *TTLCache) SweepExpired() int {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	cutoff, ok := c.engine.Cutoff(c.engine.Now())
	if !ok {
		c.mu.Unlock()
		return 0
	}

	removed := c.store.RemoveBefore(cutoff)
	removals := make([]engine.Removal, 0, len(removed))
	for _, ent := range removed {
		if c.eviction != nil {
			c.eviction.Remove(ent.Key)
		}
		removals = append(removals, engine.Removal{Entry: ent, Reason: types.Swept})
	}
	c.expirations += int64(len(removed))
	size := c.store.Len()
	c.mu.Unlock()

	if len(removed) > 0 {
		c.engine.Metrics.Size(size)
		c.engine.Notify(removals)
	}
	return len(removed)
}

// Len returns the number of entries held, including expired entries not yet
// dropped by Get or a sweep.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Keys returns the sorted keys of all live entries.
func (c *TTLCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	now := c.engine.Now()
	keys := make([]string, 0, c.store.Len())
	c.store.Range(func(ent *types.CacheEntry) bool {
		if !c.engine.IsExpired(ent, now) {
			keys = append(keys, ent.Key)
		}
		return true
	})
	sort.Strings(keys)
	return keys
}

/*
TTL returns the remaining time-to-live of key, or NotFoundTTL when the key is
absent or expired. With expiration disabled a live key reports -1.
It does not count as a request.
*/
func (c *TTLCache) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return NotFoundTTL
	}

	ent, ok := c.store.Get(key)
	if !ok {
		return NotFoundTTL
	}
	if c.engine.Expiration == nil {
		return -1
	}
	now := c.engine.Now()
	if c.engine.IsExpired(ent, now) {
		return NotFoundTTL
	}
	return c.engine.Expiration.Remaining(ent, now)
}

/*
GetOrLoad returns the value for key, loading it on a miss.

singleflight ensures that if many goroutines miss the same key at once only
one of them calls loader; the others wait and share its result. The shared
load runs on a context detached from the first caller's cancellation, so one
caller giving up does not fail the others. Context values still reach the
loader. A loader error is returned to every waiter and nothing is cached.
After Close the loaded value is returned but not stored.
*/
func (c *TTLCache) GetOrLoad(ctx context.Context, key string, loader types.Loader) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.sf.Do(key, func() (any, error) {
		v, err := loader.Load(loadCtx, key)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load %q", key)
	}
	return v, nil
}

// Close drops all entries and turns every later call into a no-op.
// Calling Close more than once is safe.
func (c *TTLCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	n := c.store.Len()
	removals := c.resetLocked()
	c.mu.Unlock()

	c.engine.Logger.Debug("cache closed", zap.Int("entries", n))
	c.engine.Metrics.Size(0)
	c.engine.Notify(removals)
}

// removeLocked deletes key from the store and the eviction policy.
func (c *TTLCache) removeLocked(key string) (*types.CacheEntry, bool) {
	ent, ok := c.store.Delete(key)
	if ok && c.eviction != nil {
		c.eviction.Remove(key)
	}
	return ent, ok
}

// resetLocked empties the cache, zeroes the counters and returns the dropped
// entries as Cleared removals.
func (c *TTLCache) resetLocked() []engine.Removal {
	var removals []engine.Removal
	if c.engine.Listener != nil {
		removals = make([]engine.Removal, 0, c.store.Len())
		c.store.Range(func(ent *types.CacheEntry) bool {
			removals = append(removals, engine.Removal{Entry: ent, Reason: types.Cleared})
			return true
		})
	}

	c.store.Reset()
	if c.eviction != nil {
		c.eviction.Reset()
	}
	c.hits, c.misses, c.expirations, c.evictions = 0, 0, 0, 0
	return removals
}
