package game

import (
	"sync"
	"time"
)

// Clock is the time source timers are measured against.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system monotonic clock.
type WallClock struct{}

// Now returns time.Now.
func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Used by tests and headless runs where
// each tick advances time by a fixed step.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set jumps the clock to t.
func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// PausableClock wraps a base clock and freezes game time while paused, so
// cooldowns and grace periods do not elapse during a pause.
type PausableClock struct {
	mu sync.RWMutex

	base        Clock
	paused      bool
	pauseStart  time.Time     // base time when the current pause began
	totalPaused time.Duration // sum of finished pauses
}

// NewPausableClock wraps base. A nil base uses the wall clock.
func NewPausableClock(base Clock) *PausableClock {
	if base == nil {
		base = WallClock{}
	}
	return &PausableClock{base: base}
}

// Now returns base time minus all paused time. While paused it is frozen at
// the pause point.
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPaused)
	}
	return pc.base.Now().Add(-pc.totalPaused)
}

// Pause stops game time. Pausing twice is a no-op.
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.base.Now()
}

// Resume restarts game time. Resuming a running clock is a no-op.
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.base.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused = false
}

// IsPaused reports the pause state.
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time, including a pause in progress.
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.totalPaused
	if pc.paused {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
