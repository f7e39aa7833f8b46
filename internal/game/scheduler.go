package game

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued,
// so a zero handle means "nothing armed".
type TimerID uint64

type timerEntry struct {
	id    TimerID
	due   time.Time
	fn    func()
	index int
}

type timerQueue []*timerEntry

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].id < q[j].id
	}
	return q[i].due.Before(q[j].due)
}
func (q timerQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *timerQueue) Push(x interface{}) { e := x.(*timerEntry); e.index = len(*q); *q = append(*q, e) }
func (q *timerQueue) Pop() interface{} {
	old := *q
	e := old[len(old)-1]
	old[len(old)-1] = nil
	e.index = -1
	*q = old[:len(old)-1]
	return e
}

// Scheduler runs one-shot callbacks once the clock passes their due time.
// Callbacks only run inside Fire, on the caller's goroutine, so they never
// race the tick that owns game state.
type Scheduler struct {
	clock  Clock
	queue  timerQueue
	byID   map[TimerID]*timerEntry
	nextID TimerID
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		byID:  make(map[TimerID]*timerEntry),
	}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// After arms fn to run once d has elapsed on the clock.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	s.nextID++
	e := &timerEntry{id: s.nextID, due: s.clock.Now().Add(d), fn: fn}
	heap.Push(&s.queue, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel disarms id. It reports whether the timer was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	return true
}

// CancelAll disarms every pending timer.
func (s *Scheduler) CancelAll() {
	s.queue = s.queue[:0]
	clear(s.byID)
}

// Pending reports how many timers are armed.
func (s *Scheduler) Pending() int { return len(s.byID) }

// Remaining returns the time left on id, or 0 if it is not armed.
func (s *Scheduler) Remaining(id TimerID) time.Duration {
	e, ok := s.byID[id]
	if !ok {
		return 0
	}
	left := e.due.Sub(s.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Fire runs every timer whose due time has passed, earliest first, and
// returns how many ran. A callback may arm or cancel other timers; timers it
// arms that are already due run in the same call.
func (s *Scheduler) Fire() int {
	now := s.clock.Now()
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due.After(now) {
			break
		}
		heap.Pop(&s.queue)
		delete(s.byID, next.id)
		next.fn()
		fired++
	}
	return fired
}
