package types

import "time"

// CacheEntry is one stored value and the instant it was written.
// StoredAt is overwritten every time the key is set again.
type CacheEntry struct {
	Key      string
	Value    any
	StoredAt time.Time
}

// Age returns how long ago the entry was stored, relative to now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}
