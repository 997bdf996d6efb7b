package api

import (
	"context"
	"time"

	"github.com/reapenglish/ttlcache/types"
)

/*
Cache defines the PUBLIC API of the TTL cache.
Expiration, statistics, capacity and locking are hidden behind it.
*/
type Cache interface {

	/*
		Get retrieves the value stored under key.

		BEHAVIOR:
		-------------------
		1. No entry: record a miss, return (nil, false)
		2. Live entry (age <= TTL): record a hit, return the stored value
		3. Expired entry: remove it, record a miss, return (nil, false)

		A miss is a normal outcome, never an error.
	*/
	Get(key string) (any, bool)

	/*
		Set inserts or overwrites key with StoredAt = now.
		Hit and miss counters are untouched; Size grows only for a new key.
	*/
	Set(key string, value any)

	// Delete removes key if present. Removing a missing key is safe.
	Delete(key string)

	// Clear removes every entry and resets all counters to zero.
	Clear()

	// Stats returns a snapshot of hits, misses, size and hit rate.
	Stats() types.Statistics

	/*
		SweepExpired removes every entry older than the TTL and returns how many
		were removed. Hit and miss counters are untouched.
		It is meant to be driven by a timer owned by the caller's lifecycle.
	*/
	SweepExpired() int

	/*
		TTL returns the remaining time-to-live for a key.

		RETURN VALUES:
		--------------
		> 0 or 0 : time left before the entry expires
		-2       : key does not exist or is already expired
	*/
	TTL(key string) time.Duration

	// GetOrLoad returns the cached value or loads, stores and returns it.
	GetOrLoad(ctx context.Context, key string, loader types.Loader) (any, error)

	// Close tears the cache down. Every later call is a no-op.
	Close()
}
