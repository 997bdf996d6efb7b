package store

import (
	"time"

	"github.com/google/btree"

	"github.com/reapenglish/ttlcache/types"
)

// indexItem is one position in the StoredAt ordering.
// seq breaks ties between entries stored at the same instant.
type indexItem struct {
	storedAt time.Time
	seq      uint64
	key      string
}

func lessIndexItem(a, b *indexItem) bool {
	if !a.storedAt.Equal(b.storedAt) {
		return a.storedAt.Before(b.storedAt)
	}
	return a.seq < b.seq
}

// orderedStore keeps a map for lookups and a btree ordered by StoredAt.
// RemoveBefore walks the tree from the oldest entry and stops at the first
// live one, so its cost is bounded by the number of expired entries.
type orderedStore struct {
	items map[string]*types.CacheEntry
	index map[string]*indexItem
	tree  *btree.BTreeG[*indexItem]
	seq   uint64
}

// NewOrderedStore returns a Store indexed by StoredAt.
func NewOrderedStore() Store {
	return &orderedStore{
		items: make(map[string]*types.CacheEntry),
		index: make(map[string]*indexItem),
		tree:  btree.NewG[*indexItem](16, lessIndexItem),
	}
}

func (s *orderedStore) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.items[key]
	return ent, ok
}

func (s *orderedStore) Put(ent *types.CacheEntry) bool {
	old, exists := s.index[ent.Key]
	if exists {
		s.tree.Delete(old)
	}

	s.seq++
	item := &indexItem{storedAt: ent.StoredAt, seq: s.seq, key: ent.Key}
	s.tree.ReplaceOrInsert(item)
	s.index[ent.Key] = item
	s.items[ent.Key] = ent
	return !exists
}

func (s *orderedStore) Delete(key string) (*types.CacheEntry, bool) {
	ent, ok := s.items[key]
	if !ok {
		return nil, false
	}
	s.tree.Delete(s.index[key])
	delete(s.index, key)
	delete(s.items, key)
	return ent, true
}

func (s *orderedStore) RemoveBefore(cutoff time.Time) []*types.CacheEntry {
	// seq 0 is never assigned, so the pivot sorts before every item stored at cutoff.
	pivot := &indexItem{storedAt: cutoff}

	var stale []*indexItem
	s.tree.AscendLessThan(pivot, func(item *indexItem) bool {
		stale = append(stale, item)
		return true
	})

	removed := make([]*types.CacheEntry, 0, len(stale))
	for _, item := range stale {
		s.tree.Delete(item)
		removed = append(removed, s.items[item.key])
		delete(s.index, item.key)
		delete(s.items, item.key)
	}
	return removed
}

// Range visits entries from the oldest StoredAt to the newest.
func (s *orderedStore) Range(fn func(*types.CacheEntry) bool) {
	s.tree.Ascend(func(item *indexItem) bool {
		return fn(s.items[item.key])
	})
}

func (s *orderedStore) Len() int {
	return len(s.items)
}

func (s *orderedStore) Reset() {
	s.items = make(map[string]*types.CacheEntry)
	s.index = make(map[string]*indexItem)
	s.tree.Clear(false)
	s.seq = 0
}
