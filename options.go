package ttlcache

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/reapenglish/ttlcache/eviction"
	"github.com/reapenglish/ttlcache/store"
	"github.com/reapenglish/ttlcache/types"
)

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	clock      clock.Clock
	metrics    types.Metrics
	logger     *zap.Logger
	listener   types.RemovalListener
	maxEntries int
	policy     eviction.PolicyType
	index      store.IndexType
}

// WithClock sets the time source. Tests pass a *clock.Mock.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithMetrics reports cache events to m.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRemovalListener registers fn for every entry that leaves the cache.
func WithRemovalListener(fn types.RemovalListener) Option {
	return func(o *options) {
		o.listener = fn
	}
}

// WithMaxEntries bounds the cache to n entries, evicting by policy when a new
// key would exceed it. n <= 0 leaves the cache unbounded. An unknown policy
// falls back to eviction.LRU.
func WithMaxEntries(n int, policy eviction.PolicyType) Option {
	return func(o *options) {
		o.maxEntries = n
		o.policy = policy
	}
}

// WithOrderedIndex keeps entries ordered by StoredAt so SweepExpired only
// visits expired entries.
func WithOrderedIndex() Option {
	return func(o *options) {
		o.index = store.IndexOrdered
	}
}

func withIndex(t store.IndexType) Option {
	return func(o *options) {
		o.index = t
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		policy: eviction.LRU,
		index:  store.IndexScan,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
