package sweeper_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/reapenglish/ttlcache"
	"github.com/reapenglish/ttlcache/sweeper"
)

type countingTarget struct {
	calls atomic.Int32
}

func (c *countingTarget) SweepExpired() int {
	c.calls.Add(1)
	return 0
}

const waitFor = time.Second

func TestSweeperTicksOnInterval(t *testing.T) {
	mock := clock.NewMock()
	target := &countingTarget{}
	s := sweeper.New(target, time.Minute, sweeper.WithClock(mock), sweeper.WithLogger(zaptest.NewLogger(t)))

	s.Start(context.Background())
	defer s.Stop()
	require.True(t, s.Running())

	mock.Add(30 * time.Second)
	assert.Equal(t, int32(0), target.calls.Load())

	for want := int32(1); want <= 3; want++ {
		mock.Add(time.Minute)
		require.Eventually(t, func() bool { return target.calls.Load() == want }, waitFor, time.Millisecond)
	}
}

func TestSweeperStop(t *testing.T) {
	mock := clock.NewMock()
	target := &countingTarget{}
	s := sweeper.New(target, time.Minute, sweeper.WithClock(mock))

	s.Start(context.Background())
	s.Stop()
	assert.False(t, s.Running())

	mock.Add(5 * time.Minute)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), target.calls.Load())

	// idempotent
	s.Stop()
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	mock := clock.NewMock()
	s := sweeper.New(&countingTarget{}, time.Minute, sweeper.WithClock(mock))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !s.Running() }, waitFor, time.Millisecond)
	s.Stop()
}

func TestSweeperStartTwiceIsNoop(t *testing.T) {
	mock := clock.NewMock()
	target := &countingTarget{}
	s := sweeper.New(target, time.Minute, sweeper.WithClock(mock))

	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	mock.Add(time.Minute)
	require.Eventually(t, func() bool { return target.calls.Load() == 1 }, waitFor, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), target.calls.Load())
}

func TestSweeperDefaultInterval(t *testing.T) {
	mock := clock.NewMock()
	target := &countingTarget{}
	s := sweeper.New(target, 0, sweeper.WithClock(mock))

	s.Start(context.Background())
	defer s.Stop()

	mock.Add(sweeper.DefaultInterval - time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), target.calls.Load())

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return target.calls.Load() == 1 }, waitFor, time.Millisecond)
}

func TestSweeperPurgesCache(t *testing.T) {
	mock := clock.NewMock()
	c := ttlcache.NewTTLCache(time.Minute, ttlcache.WithClock(mock))
	s := sweeper.New(c, 2*time.Minute, sweeper.WithClock(mock))

	c.Set("apple", "яблоко")
	c.Set("book", "книга")

	s.Start(context.Background())
	defer s.Stop()

	mock.Add(2 * time.Minute)
	require.Eventually(t, func() bool { return c.Len() == 0 }, waitFor, time.Millisecond)

	stats := c.Stats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, int64(2), stats.Expirations)
}
