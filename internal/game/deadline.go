package game

import "time"

// DeadlinePhase is the monitor's state.
type DeadlinePhase int

const (
	DeadlineClear DeadlinePhase = iota
	DeadlineGrace
)

func (p DeadlinePhase) String() string {
	if p == DeadlineGrace {
		return "grace"
	}
	return "clear"
}

// DeadlineMonitor watches the stack height. A token poking above the line
// starts a grace countdown; only a violation that outlasts the whole
// countdown ends the game.
type DeadlineMonitor struct {
	physics   Physics
	scheduler *Scheduler
	lineY     float64
	grace     time.Duration

	phase DeadlinePhase
	timer TimerID // zero when nothing is armed

	onWarning func(active bool)
	onExpire  func()
}

// NewDeadlineMonitor creates a monitor for the line at lineY. onWarning is
// called on every Clear/Grace transition; onExpire once per elapsed countdown.
func NewDeadlineMonitor(physics Physics, scheduler *Scheduler, lineY float64, grace time.Duration, onWarning func(bool), onExpire func()) *DeadlineMonitor {
	if onWarning == nil {
		onWarning = func(bool) {}
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	return &DeadlineMonitor{
		physics:   physics,
		scheduler: scheduler,
		lineY:     lineY,
		grace:     grace,
		onWarning: onWarning,
		onExpire:  onExpire,
	}
}

// Check runs once per tick while playing.
func (dm *DeadlineMonitor) Check() {
	violating := dm.Violating()
	switch {
	case violating && dm.phase == DeadlineClear:
		dm.phase = DeadlineGrace
		var id TimerID
		id = dm.scheduler.After(dm.grace, func() { dm.expire(id) })
		dm.timer = id
		dm.onWarning(true)
	case !violating && dm.phase == DeadlineGrace:
		dm.disarm()
		dm.phase = DeadlineClear
		dm.onWarning(false)
	}
}

// Violating reports whether any token's top edge is above the line.
func (dm *DeadlineMonitor) Violating() bool {
	for _, t := range dm.physics.Tokens() {
		if t.Top() < dm.lineY {
			return true
		}
	}
	return false
}

// Phase returns the current state.
func (dm *DeadlineMonitor) Phase() DeadlinePhase { return dm.phase }

// LineY is the deadline height.
func (dm *DeadlineMonitor) LineY() float64 { return dm.lineY }

// Remaining is the time left before game over, or 0 when clear.
func (dm *DeadlineMonitor) Remaining() time.Duration {
	if dm.timer == 0 {
		return 0
	}
	return dm.scheduler.Remaining(dm.timer)
}

// Reset cancels any countdown and returns to Clear silently.
func (dm *DeadlineMonitor) Reset() {
	dm.disarm()
	dm.phase = DeadlineClear
}

func (dm *DeadlineMonitor) disarm() {
	if dm.timer != 0 {
		dm.scheduler.Cancel(dm.timer)
		dm.timer = 0
	}
}

func (dm *DeadlineMonitor) expire(id TimerID) {
	// Superseded or cancelled countdowns must not end a fresh board.
	if id == 0 || id != dm.timer || dm.phase != DeadlineGrace {
		return
	}
	dm.timer = 0
	dm.onExpire()
}
