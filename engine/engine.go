package engine

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/reapenglish/ttlcache/expiration"
	"github.com/reapenglish/ttlcache/types"
)

/*
CacheEngine is the policy layer of the cache.

It decides:
- What "now" is
- Whether an entry is expired
- Where events are reported (metrics, removal listener, logs)

It does NOT:
- Store data
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {

	// Clock is the time source for StoredAt and every expiry check.
	Clock clock.Clock

	// Expiration decides when an entry is too old to serve.
	Expiration expiration.Strategy

	// Metrics receives hit, miss, expiration, eviction and size events.
	Metrics types.Metrics

	// Listener is notified for every removed entry. May be nil.
	Listener types.RemovalListener

	Logger *zap.Logger
}

// NewCacheEngine creates a CacheEngine, filling nil collaborators with defaults.
func NewCacheEngine(
	clk clock.Clock,
	exp expiration.Strategy,
	metrics types.Metrics,
	listener types.RemovalListener,
	logger *zap.Logger,
) *CacheEngine {
	if clk == nil {
		clk = clock.New()
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CacheEngine{
		Clock:      clk,
		Expiration: exp,
		Metrics:    metrics,
		Listener:   listener,
		Logger:     logger,
	}
}

// Now returns the current time from the configured clock.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// IsExpired reports whether ent is past its TTL at now.
// With no Expiration strategy nothing ever expires.
func (e *CacheEngine) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return e.Expiration != nil && e.Expiration.IsExpired(ent, now)
}

// Cutoff returns the oldest StoredAt still live at now.
// ok is false when no Expiration strategy is configured.
func (e *CacheEngine) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	if e.Expiration == nil {
		return time.Time{}, false
	}
	return e.Expiration.Cutoff(now), true
}

// Removal is an entry that left the cache and the reason it left.
type Removal struct {
	Entry  *types.CacheEntry
	Reason types.RemovalReason
}

// Notify reports removals to metrics and the listener.
// Callers must not hold the cache lock.
func (e *CacheEngine) Notify(removals []Removal) {
	for _, r := range removals {
		switch r.Reason {
		case types.Expired, types.Swept:
			e.Metrics.Expire()
		case types.Evicted:
			e.Metrics.Eviction()
		}
		if e.Listener != nil {
			e.Listener(r.Entry.Key, r.Entry.Value, r.Reason)
		}
	}
}
