package store

import (
	"time"

	"github.com/reapenglish/ttlcache/types"
)

// mapStore holds entries in a single map. RemoveBefore is O(n) in the number
// of entries held.
type mapStore struct {
	items map[string]*types.CacheEntry
}

// NewMapStore returns a map-backed Store.
func NewMapStore() Store {
	return &mapStore{items: make(map[string]*types.CacheEntry)}
}

func (s *mapStore) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.items[key]
	return ent, ok
}

func (s *mapStore) Put(ent *types.CacheEntry) bool {
	_, exists := s.items[ent.Key]
	s.items[ent.Key] = ent
	return !exists
}

func (s *mapStore) Delete(key string) (*types.CacheEntry, bool) {
	ent, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return ent, ok
}

func (s *mapStore) RemoveBefore(cutoff time.Time) []*types.CacheEntry {
	var removed []*types.CacheEntry
	for key, ent := range s.items {
		if ent.StoredAt.Before(cutoff) {
			removed = append(removed, ent)
			delete(s.items, key)
		}
	}
	return removed
}

func (s *mapStore) Range(fn func(*types.CacheEntry) bool) {
	for _, ent := range s.items {
		if !fn(ent) {
			return
		}
	}
}

func (s *mapStore) Len() int {
	return len(s.items)
}

func (s *mapStore) Reset() {
	s.items = make(map[string]*types.CacheEntry)
}
