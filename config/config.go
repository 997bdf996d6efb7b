package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/reapenglish/ttlcache/eviction"
	"github.com/reapenglish/ttlcache/store"
)

// EnvPrefix is prepended to environment overrides, e.g. TTLCACHE_TTL=10m.
const EnvPrefix = "TTLCACHE"

// ErrInvalidConfig marks every validation failure.
var ErrInvalidConfig = errors.New("invalid cache config")

// Config contains configuration for a cache and its sweeper.
type Config struct {
	// TTL is how long an entry stays live after it was set.
	TTL time.Duration `mapstructure:"ttl"`

	// SweepInterval is how often the sweeper purges expired entries.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`

	// MaxEntries bounds the number of entries. Zero means unbounded.
	MaxEntries int `mapstructure:"max_entries"`

	// EvictionPolicy picks victims when MaxEntries is reached.
	EvictionPolicy eviction.PolicyType `mapstructure:"eviction_policy"`

	// Index selects the entry store ("scan" or "ordered").
	Index store.IndexType `mapstructure:"index"`

	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig controls Prometheus export.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Component string `mapstructure:"component"`
	// Addr is where the demo binary serves /metrics. Empty disables serving.
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the vocabulary-cache defaults: 30 minute TTL swept
// every 5 minutes, unbounded.
func DefaultConfig() Config {
	return Config{
		TTL:            30 * time.Minute,
		SweepInterval:  5 * time.Minute,
		MaxEntries:     0,
		EvictionPolicy: eviction.LRU,
		Index:          store.IndexScan,
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "ttlcache",
			Component: "vocabulary",
		},
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "ttl must be positive, got %v", c.TTL)
	}
	if c.SweepInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "sweep_interval must be positive, got %v", c.SweepInterval)
	}
	if c.MaxEntries < 0 {
		return errors.Wrapf(ErrInvalidConfig, "max_entries must not be negative, got %d", c.MaxEntries)
	}
	if c.MaxEntries > 0 && !c.EvictionPolicy.Valid() {
		return errors.Wrapf(ErrInvalidConfig, "unknown eviction_policy %q", c.EvictionPolicy)
	}
	switch c.Index {
	case store.IndexScan, store.IndexOrdered:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown index %q", c.Index)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.Wrap(ErrInvalidConfig, "metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// Load reads configuration from path (YAML, JSON or TOML by extension) and
// from TTLCACHE_* environment variables, on top of DefaultConfig.
// An empty path reads the environment only. The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("ttl", d.TTL)
	v.SetDefault("sweep_interval", d.SweepInterval)
	v.SetDefault("max_entries", d.MaxEntries)
	v.SetDefault("eviction_policy", string(d.EvictionPolicy))
	v.SetDefault("index", string(d.Index))
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.component", d.Metrics.Component)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}
