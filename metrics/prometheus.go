package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reapenglish/ttlcache/types"
)

var _ types.Metrics = (*Prometheus)(nil)

// Prometheus exports cache events as Prometheus counters and a size gauge.
type Prometheus struct {
	hits        prometheus.Counter
	misses      prometheus.Counter
	expirations prometheus.Counter
	evictions   prometheus.Counter
	size        prometheus.Gauge
}

// NewPrometheus creates the cache metrics and registers them with reg.
// component is attached as a constant label so several caches can share one registry.
func NewPrometheus(reg prometheus.Registerer, namespace, component string) (*Prometheus, error) {
	labels := prometheus.Labels{"component": component}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &Prometheus{
		hits:        counter("hits_total", "Total number of cache hits"),
		misses:      counter("misses_total", "Total number of cache misses"),
		expirations: counter("expirations_total", "Total number of entries removed after their TTL"),
		evictions:   counter("evictions_total", "Total number of entries evicted by the capacity bound"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "size",
			Help:        "Current number of entries in cache",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{m.hits, m.misses, m.expirations, m.evictions, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(err, "register cache metrics for %q", component)
		}
	}
	return m, nil
}

func (m *Prometheus) Hit()       { m.hits.Inc() }
func (m *Prometheus) Miss()      { m.misses.Inc() }
func (m *Prometheus) Expire()    { m.expirations.Inc() }
func (m *Prometheus) Eviction()  { m.evictions.Inc() }
func (m *Prometheus) Size(n int) { m.size.Set(float64(n)) }
