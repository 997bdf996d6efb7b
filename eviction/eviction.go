package eviction

/*
This file defines how the cache picks a victim when a capacity bound is set.
Capacity is optional; without it no policy is created and entries leave the
cache only by TTL, Delete or Clear.
*/

/*
Policy tracks keys for victim selection. It holds no values.

The cache calls every method while holding its lock and keeps the policy in
step with its store: every key added to the store is passed to OnPut, every
key removed for any reason other than Evict is passed to Remove.
*/
type Policy interface {

	// OnGet is called after a hit on key.
	OnGet(string)

	// OnPut is called after key is inserted or overwritten.
	OnPut(string)

	// Remove forgets key. Removing an untracked key is a no-op.
	Remove(string)

	// Evict chooses a victim, forgets it and returns it.
	// ok is false when nothing is tracked. The empty string is a valid key.
	Evict() (key string, ok bool)

	// Len returns how many keys are tracked.
	Len() int

	// Reset forgets every key.
	Reset()
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): evicts the key that was read or written least recently.
	LRU PolicyType = "lru"

	// FIFO (First In First Out): evicts the key inserted first. Overwrites keep the original position.
	FIFO PolicyType = "fifo"
)

// Valid reports whether t names a supported policy.
func (t PolicyType) Valid() bool {
	return t == LRU || t == FIFO
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy.
func NewEvictionPolicy(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRU()
	case FIFO:
		return newFIFO()
	default:
		panic("unknown eviction policy: " + string(t))
	}
}
