// Package sweeper runs a cache's SweepExpired on a fixed interval until it is
// stopped or its context is canceled.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 5 * time.Minute

// Target is anything that can purge its own expired entries.
type Target interface {
	SweepExpired() int
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithClock sets the clock whose ticker drives the sweeps.
func WithClock(clk clock.Clock) Option {
	return func(s *Sweeper) {
		s.clock = clk
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// Sweeper periodically calls Target.SweepExpired.
type Sweeper struct {
	target   Target
	interval time.Duration
	clock    clock.Clock
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stopped Sweeper for target.
func New(target Target, interval time.Duration, opts ...Option) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Sweeper{
		target:   target,
		interval: interval,
		clock:    clock.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the sweep loop. It is a no-op if the loop is already running.
// The loop exits when ctx is canceled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	// created here, not in the goroutine, so the first tick is measured from Start
	ticker := s.clock.Ticker(s.interval)
	go s.loop(ctx, ticker, s.done)

	s.logger.Info("cache sweeper started", zap.Duration("interval", s.interval))
}

// Stop ends the sweep loop and waits for it to exit. Stopping a sweeper that
// is not running is a no-op. A stopped sweeper may be started again.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("cache sweeper stopped")
}

// Running reports whether the sweep loop is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) loop(ctx context.Context, ticker *clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	defer s.markStopped(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// markStopped clears running when the loop exits on its own, e.g. after the
// parent context was canceled.
func (s *Sweeper) markStopped(done chan struct{}) {
	s.mu.Lock()
	if s.done == done {
		s.running = false
	}
	s.mu.Unlock()
}

func (s *Sweeper) sweep() {
	start := s.clock.Now()
	removed := s.target.SweepExpired()
	if removed > 0 {
		s.logger.Debug("swept expired cache entries",
			zap.Int("removed", removed),
			zap.Duration("took", s.clock.Since(start)))
	}
}
