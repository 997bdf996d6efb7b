package types

// This file defines how the cache reports what it is doing.

/*
Metrics is the set of events the cache emits while it runs.
The cache calls these methods after the operation has been applied, without
holding its lock, so implementations may block briefly but must be safe for
concurrent use.
*/
type Metrics interface {

	// Hit is called when Get returns a live entry.
	Hit()

	// Miss is called when Get finds no entry or an expired one.
	Miss()

	// Expire is called once per entry removed because its TTL had passed,
	// whether it was found stale by Get or purged by a sweep.
	Expire()

	// Eviction is called when a key is removed to respect the capacity bound.
	Eviction()

	// Size reports the number of entries held after a mutating operation.
	Size(n int)
}

// NoopMetrics ignores every event. It is the default when no Metrics is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Size(int)  {}
