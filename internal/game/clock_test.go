package game

import (
	"testing"
	"time"
)

func TestManualClock_Advance(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)
	c.Advance(3 * time.Second)
	if got := c.Now().Sub(start); got != 3*time.Second {
		t.Fatalf("expected 3s elapsed, got %s", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Fatalf("Set did not rewind the clock")
	}
}

func TestPausableClock_FreezesWhilePaused(t *testing.T) {
	base := NewManualClock(time.Unix(0, 0))
	pc := NewPausableClock(base)

	base.Advance(time.Second)
	if got := pc.Now().Sub(time.Unix(0, 0)); got != time.Second {
		t.Fatalf("expected 1s before pause, got %s", got)
	}

	pc.Pause()
	pc.Pause() // no-op
	base.Advance(5 * time.Second)
	if got := pc.Now().Sub(time.Unix(0, 0)); got != time.Second {
		t.Fatalf("expected frozen at 1s, got %s", got)
	}
	if pc.TotalPaused() != 5*time.Second {
		t.Fatalf("expected 5s paused in progress, got %s", pc.TotalPaused())
	}

	pc.Resume()
	pc.Resume() // no-op
	base.Advance(2 * time.Second)
	if got := pc.Now().Sub(time.Unix(0, 0)); got != 3*time.Second {
		t.Fatalf("expected 3s of game time, got %s", got)
	}
	if pc.IsPaused() {
		t.Fatalf("clock should be running")
	}
	if pc.TotalPaused() != 5*time.Second {
		t.Fatalf("expected 5s total paused, got %s", pc.TotalPaused())
	}
}
