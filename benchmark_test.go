package ttlcache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/reapenglish/ttlcache"
	"github.com/reapenglish/ttlcache/eviction"
)

func newBenchmarkCache(opts ...ttlcache.Option) *ttlcache.TTLCache {
	return ttlcache.NewTTLCache(30*time.Minute, opts...)
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCacheGetHit(b *testing.B) {
	c := newBenchmarkCache()
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkCacheGetMiss(b *testing.B) {
	c := newBenchmarkCache()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("miss-%d", i))
	}
}

//
// ================= WRITE BENCH =================
//

func BenchmarkCacheSet(b *testing.B) {
	c := newBenchmarkCache()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
}

func BenchmarkCacheSetBounded(b *testing.B) {
	c := newBenchmarkCache(ttlcache.WithMaxEntries(10000, eviction.LRU))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
}

//
// ================= SWEEP BENCH =================
//

func benchmarkSweepNothingExpired(b *testing.B, opts ...ttlcache.Option) {
	c := newBenchmarkCache(opts...)
	for i := 0; i < 100000; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SweepExpired()
	}
}

func BenchmarkSweepScan(b *testing.B) {
	benchmarkSweepNothingExpired(b)
}

func BenchmarkSweepOrdered(b *testing.B) {
	benchmarkSweepNothingExpired(b, ttlcache.WithOrderedIndex())
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkCacheParallelGet(b *testing.B) {
	c := newBenchmarkCache()
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get("key-42")
		}
	})
}

func BenchmarkCacheHighConcurrency(b *testing.B) {
	c := newBenchmarkCache()

	keys := make([]string, 10000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		c.Set(keys[i], i)
	}

	b.ResetTimer()

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < b.N/100; j++ {
				c.Get(keys[j%len(keys)])
			}
		}()
	}
	wg.Wait()
}
