package game

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresTickZeroThenPerInterval(t *testing.T) {
	mt := &manualTicker{}
	s := NewScheduler(time.Second, mt.factory)

	var mu sync.Mutex
	var got []time.Duration
	timer := s.Start(func(elapsed time.Duration) bool {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, elapsed)
		return false
	}, func() {})
	defer timer.Cancel()

	mu.Lock()
	require.Equal(t, []time.Duration{0}, got, "first tick is synchronous")
	mu.Unlock()

	mt.Tick(3)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 4
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, []time.Duration{0, time.Second, 2 * time.Second, 3 * time.Second}, got)
	mu.Unlock()
}

func TestSchedulerStopsWhenTickReturnsTrue(t *testing.T) {
	mt := &manualTicker{}
	s := NewScheduler(time.Second, mt.factory)

	var ticks, done atomic.Int32
	timer := s.Start(func(elapsed time.Duration) bool {
		ticks.Add(1)
		return elapsed >= 2*time.Second
	}, func() {
		done.Add(1)
	})
	defer timer.Cancel()

	mt.Tick(6)
	require.Eventually(t, func() bool { return done.Load() == 1 }, time.Second, time.Millisecond)

	// tick(0), tick(1s) and the stopping tick(2s); the rest must be ignored
	assert.Equal(t, int32(3), ticks.Load())

	mt.Tick(2)
	assert.Never(t, func() bool { return done.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestSchedulerOnDoneRunsForImmediateStop(t *testing.T) {
	mt := &manualTicker{}
	s := NewScheduler(time.Second, mt.factory)

	var done atomic.Int32
	s.Start(func(elapsed time.Duration) bool { return true }, func() { done.Add(1) })
	assert.Equal(t, int32(1), done.Load())
}

func TestTimerCancelSuppressesOnDone(t *testing.T) {
	mt := &manualTicker{}
	s := NewScheduler(time.Second, mt.factory)

	var done atomic.Int32
	timer := s.Start(func(time.Duration) bool { return false }, func() { done.Add(1) })

	timer.Cancel()
	timer.Cancel() // idempotent

	mt.Tick(3)
	assert.Never(t, func() bool { return done.Load() != 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestTimerCancelAfterCompletionIsSafe(t *testing.T) {
	mt := &manualTicker{}
	s := NewScheduler(time.Second, mt.factory)

	var done atomic.Int32
	timer := s.Start(func(elapsed time.Duration) bool { return elapsed >= time.Second }, func() { done.Add(1) })

	mt.Tick(1)
	require.Eventually(t, func() bool { return done.Load() == 1 }, time.Second, time.Millisecond)

	timer.Cancel()
	assert.Equal(t, int32(1), done.Load())
}
