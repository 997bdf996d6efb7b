// This file implements LRU eviction.

package eviction

// lru keeps keys ordered by last use; reads and writes both count as use.
type lru struct {
	keyOrder
}

func newLRU() *lru {
	return &lru{keyOrder: newKeyOrder()}
}

// OnGet marks k as most recently used.
func (l *lru) OnGet(k string) {
	l.moveToBack(k)
}

// OnPut tracks a new key as most recently used, or refreshes an existing one.
func (l *lru) OnPut(k string) {
	if l.has(k) {
		l.moveToBack(k)
		return
	}
	l.pushBack(k)
}
