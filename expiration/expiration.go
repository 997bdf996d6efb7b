// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/reapenglish/ttlcache/types"
)

/*
Strategy is the rule that decides whether an entry is too old to serve.
The cache consults it on every Get and during sweeps, so both methods must be
cheap and must agree: IsExpired(ent, now) is true exactly when
ent.StoredAt is before Cutoff(now).
*/
type Strategy interface {

	// IsExpired reports whether the entry must be treated as a miss at now.
	IsExpired(*types.CacheEntry, time.Time) bool

	// Cutoff returns the oldest StoredAt that is still live at now.
	// Stores use it to purge expired entries without asking per entry.
	Cutoff(time.Time) time.Time

	// Remaining returns how long the entry stays live after now.
	// It is zero or negative once the entry has expired.
	Remaining(*types.CacheEntry, time.Time) time.Duration
}

/*
ExpireAfterWrite gives every entry the same fixed lifetime, counted from the
moment it was last set. Reads never extend it.

An entry is expired once now - StoredAt > TTL. The comparison is strict, so an
entry whose age is exactly TTL is still served.
*/
type ExpireAfterWrite struct {
	TTL time.Duration
}

// IsExpired checks whether the entry is expired at this moment.
func (e *ExpireAfterWrite) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.Age(now) > e.TTL
}

// Cutoff returns now - TTL.
func (e *ExpireAfterWrite) Cutoff(now time.Time) time.Time {
	return now.Add(-e.TTL)
}

// Remaining returns TTL minus the entry's age.
func (e *ExpireAfterWrite) Remaining(ent *types.CacheEntry, now time.Time) time.Duration {
	return e.TTL - ent.Age(now)
}
