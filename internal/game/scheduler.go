package game

import (
	"sync"
	"time"
)

// TickerFactory supplies the tick channel for a timer plus a release
// function. Tests swap in hand-driven channels so no test sleeps on a real
// clock.
type TickerFactory func(interval time.Duration) (<-chan time.Time, func())

// RealTicker is the production TickerFactory, backed by time.Ticker.
func RealTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Scheduler starts the repeating timers that drive every time-based state
// transition. It is stateless and safe to share between sessions.
type Scheduler struct {
	interval time.Duration
	ticker   TickerFactory
}

func NewScheduler(interval time.Duration, ticker TickerFactory) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	if ticker == nil {
		ticker = RealTicker
	}
	return &Scheduler{interval: interval, ticker: ticker}
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Timer is one live countdown handle.
type Timer struct {
	mu       sync.Mutex
	stopped  bool
	stopTick func()
	done     chan struct{}
}

// Start runs tick(0) synchronously, then tick once per interval with the
// elapsed time since start. When tick returns true the timer stops itself
// and onDone runs exactly once. A cancelled timer never calls onDone.
//
// Elapsed time is counted in whole intervals rather than read from the wall
// clock, so a timer fed by a manual ticker advances deterministically.
func (s *Scheduler) Start(tick func(elapsed time.Duration) bool, onDone func()) *Timer {
	ch, stop := s.ticker(s.interval)
	t := &Timer{stopTick: stop, done: make(chan struct{})}

	if tick(0) {
		t.finish()
		onDone()
		return t
	}

	go func() {
		ticks := 0
		for {
			select {
			case <-t.done:
				return
			case <-ch:
				ticks++
				if tick(time.Duration(ticks) * s.interval) {
					if t.finish() {
						onDone()
					}
					return
				}
			}
		}
	}()
	return t
}

// Cancel stops delivery without running onDone. Safe to call repeatedly and
// after the timer has already finished.
func (t *Timer) Cancel() {
	t.finish()
}

// finish transitions the timer to stopped and reports whether this call won
// the race; a false return means the timer was already cancelled or done.
func (t *Timer) finish() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.stopTick()
	close(t.done)
	return true
}
