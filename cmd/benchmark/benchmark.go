package main

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reapenglish/ttlcache"
	"github.com/reapenglish/ttlcache/eviction"
)

// ================= BENCHMARK =================

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---------------- Cache Config ----------------
	const (
		capacity    = 200000
		preloadKeys = 100000
		goroutines  = 200
		opsPerG     = 5000
		ttl         = 60 * time.Second
	)

	logger.Info("cache load benchmark",
		zap.Int("capacity", capacity),
		zap.Int("preload_keys", preloadKeys),
		zap.Int("goroutines", goroutines),
		zap.Int("ops_per_goroutine", opsPerG))

	for _, ordered := range []bool{false, true} {
		opts := []ttlcache.Option{ttlcache.WithMaxEntries(capacity, eviction.LRU)}
		if ordered {
			opts = append(opts, ttlcache.WithOrderedIndex())
		}
		c := ttlcache.NewTTLCache(ttl, opts...)

		// ---------------- Preload Cache ----------------
		for i := 0; i < preloadKeys; i++ {
			c.Set(fmt.Sprintf("key-%d", i), i)
		}

		// ---------------- Load Test ----------------
		start := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(id int) {
				defer wg.Done()
				for j := 0; j < opsPerG; j++ {
					key := fmt.Sprintf("key-%d", (id*opsPerG+j)%(2*preloadKeys))
					if _, ok := c.Get(key); !ok {
						c.Set(key, j)
					}
				}
			}(i)
		}
		wg.Wait()
		duration := time.Since(start)

		sweepStart := time.Now()
		removed := c.SweepExpired()
		sweepTook := time.Since(sweepStart)

		totalOps := goroutines * opsPerG
		stats := c.Stats()
		logger.Info("results",
			zap.Bool("ordered_index", ordered),
			zap.Int("total_operations", totalOps),
			zap.Duration("total_time", duration),
			zap.Float64("ops_per_sec", float64(totalOps)/duration.Seconds()),
			zap.String("hit_rate", stats.HitRate),
			zap.Int64("evictions", stats.Evictions),
			zap.Int("swept", removed),
			zap.Duration("sweep_time", sweepTook))

		c.Close()
	}
}
