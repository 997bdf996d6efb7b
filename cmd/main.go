package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reapenglish/ttlcache"
	"github.com/reapenglish/ttlcache/config"
	"github.com/reapenglish/ttlcache/metrics"
	"github.com/reapenglish/ttlcache/sweeper"
	"github.com/reapenglish/ttlcache/types"
)

// ================= DICTIONARY (BACKING SOURCE) =================

// dictionary stands in for the remote vocabulary API the dashboard queries.
type dictionary struct {
	latency time.Duration
	entries map[string]string

	mu    sync.Mutex
	calls int
}

func (d *dictionary) Load(ctx context.Context, key string) (any, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	select {
	case <-time.After(d.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// keys are "<lang>:<word>"
	_, word, _ := strings.Cut(key, ":")
	def, ok := d.entries[word]
	if !ok {
		return nil, errors.Newf("no definition for %q", word)
	}
	return def, nil
}

func (d *dictionary) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// maxExpiryWait caps how long the demo sleeps to show expiry.
const maxExpiryWait = 30 * time.Second

func vocabularyKey(lang, word string) string {
	return lang + ":" + word
}

// ================= MAIN =================

func main() {
	configPath := flag.String("config", "", "path to a cache config file (yaml, json or toml)")
	ttl := flag.Duration("ttl", 0, "entry TTL, overrides config when set")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(*configPath, *ttl, logger); err != nil {
		logger.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}
}

// applyTTLFlag overrides the configured TTL and sweep interval only when the
// -ttl flag was given a positive value.
func applyTTLFlag(cfg config.Config, ttl time.Duration) config.Config {
	if ttl > 0 {
		cfg.TTL = ttl
		cfg.SweepInterval = ttl / 2
	}
	return cfg
}

func run(configPath string, ttl time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---------------- Config ----------------
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = applyTTLFlag(cfg, ttl)
	logger.Info("cache config",
		zap.Duration("ttl", cfg.TTL),
		zap.Duration("sweep_interval", cfg.SweepInterval),
		zap.Int("max_entries", cfg.MaxEntries),
		zap.String("eviction_policy", string(cfg.EvictionPolicy)),
		zap.String("index", string(cfg.Index)))

	// ---------------- Metrics ----------------
	opts := []ttlcache.Option{ttlcache.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		m, err := metrics.NewPrometheus(reg, cfg.Metrics.Namespace, cfg.Metrics.Component)
		if err != nil {
			return err
		}
		opts = append(opts, ttlcache.WithMetrics(m))

		if cfg.Metrics.Addr != "" {
			srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Warn("metrics server stopped", zap.Error(err))
				}
			}()
			defer srv.Close()
			logger.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
		}
	}

	// ---------------- Cache + Sweeper ----------------
	opts = append(opts, ttlcache.WithRemovalListener(func(key string, _ any, reason types.RemovalReason) {
		logger.Debug("entry removed", zap.String("key", key), zap.Stringer("reason", reason))
	}))
	cache, err := ttlcache.NewFromConfig(cfg, opts...)
	if err != nil {
		return err
	}
	defer cache.Close()

	sw := sweeper.New(cache, cfg.SweepInterval, sweeper.WithLogger(logger))
	sw.Start(ctx)
	defer sw.Stop()

	dict := &dictionary{
		latency: 100 * time.Millisecond,
		entries: map[string]string{
			"apple": "a round fruit",
			"book":  "a set of printed pages",
			"river": "a large natural stream of water",
		},
	}

	// ====================================================
	logger.Info("1) cache miss loads from the dictionary")
	v, err := cache.GetOrLoad(ctx, vocabularyKey("en", "apple"), dict)
	if err != nil {
		return err
	}
	logger.Info("lookup", zap.Any("value", v), zap.Int("dictionary_calls", dict.Calls()))

	// ====================================================
	logger.Info("2) cache hit")
	v, _ = cache.GetOrLoad(ctx, vocabularyKey("en", "apple"), dict)
	logger.Info("lookup", zap.Any("value", v), zap.Int("dictionary_calls", dict.Calls()))

	// ====================================================
	logger.Info("3) concurrent misses share one load")
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.GetOrLoad(ctx, vocabularyKey("en", "book"), dict)
		}()
	}
	wg.Wait()
	logger.Info("after concurrent lookups", zap.Int("dictionary_calls", dict.Calls()))

	// ====================================================
	logger.Info("4) loader errors are not cached")
	if _, err := cache.GetOrLoad(ctx, vocabularyKey("en", "zzyzx"), dict); err != nil {
		logger.Info("lookup failed", zap.Error(err))
	}

	// ====================================================
	if wait := cfg.TTL + cfg.SweepInterval; wait <= maxExpiryWait {
		logger.Info("5) entries expire after the TTL")
		time.Sleep(wait)
		_, ok := cache.Get(vocabularyKey("en", "apple"))
		logger.Info("after ttl", zap.Bool("apple_cached", ok), zap.Int("size", cache.Len()))
	} else {
		logger.Info("5) skipping expiry step, pass a short -ttl to see it", zap.Duration("wait", wait))
	}

	// ====================================================
	stats := cache.Stats()
	logger.Info("stats",
		zap.Int64("hits", stats.Hits),
		zap.Int64("misses", stats.Misses),
		zap.Int64("total_requests", stats.TotalRequests),
		zap.String("hit_rate", stats.HitRate),
		zap.Int("size", stats.Size),
		zap.Int64("expirations", stats.Expirations),
		zap.Int64("evictions", stats.Evictions))

	return nil
}
