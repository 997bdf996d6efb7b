package store

import (
	"time"

	"github.com/reapenglish/ttlcache/types"
)

/*
This file defines how entries are held in memory.

A Store is a plain container: it does not lock, count hits or decide what is
expired. The cache owns one Store and serializes every call to it under its
own mutex, together with the statistics counters.
*/

// Store is the interface the cache uses to keep its entries.
type Store interface {

	// Get returns the entry for key, expired or not.
	Get(key string) (*types.CacheEntry, bool)

	// Put inserts or replaces the entry for ent.Key.
	// It reports whether the key was not present before.
	Put(ent *types.CacheEntry) (created bool)

	// Delete removes the entry for key and returns it.
	Delete(key string) (*types.CacheEntry, bool)

	// RemoveBefore removes every entry whose StoredAt is strictly before cutoff
	// and returns the removed entries.
	RemoveBefore(cutoff time.Time) []*types.CacheEntry

	// Range calls fn for each entry until fn returns false.
	Range(fn func(*types.CacheEntry) bool)

	// Len returns how many entries are stored.
	Len() int

	// Reset drops all entries.
	Reset()
}

// IndexType selects a Store implementation.
type IndexType string

const (
	// IndexScan keeps a bare map; sweeps scan every entry.
	IndexScan IndexType = "scan"

	// IndexOrdered also keeps entries ordered by StoredAt, so a sweep only
	// visits the entries it removes.
	IndexOrdered IndexType = "ordered"
)

// New is a small factory: given an IndexType it returns the matching Store.
// An empty IndexType selects IndexScan.
func New(t IndexType) Store {
	switch t {
	case IndexOrdered:
		return NewOrderedStore()
	case IndexScan, "":
		return NewMapStore()
	default:
		panic("unknown store index type: " + string(t))
	}
}
