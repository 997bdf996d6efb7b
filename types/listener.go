package types

// RemovalReason tells a RemovalListener why an entry left the cache.
type RemovalReason int

const (
	// Deleted means the caller removed the key with Delete.
	Deleted RemovalReason = iota

	// Expired means Get found the entry past its TTL and dropped it.
	Expired

	// Swept means a SweepExpired pass purged the entry.
	Swept

	// Evicted means the entry was removed to make room under the capacity bound.
	Evicted

	// Cleared means the whole cache was emptied by Clear or Close.
	Cleared
)

func (r RemovalReason) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case Expired:
		return "expired"
	case Swept:
		return "swept"
	case Evicted:
		return "evicted"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// RemovalListener is notified for every entry that leaves the cache.
// Overwriting a key with Set is not a removal.
// Listeners run after the cache lock is released.
type RemovalListener func(key string, value any, reason RemovalReason)
