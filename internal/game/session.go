package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// State is the session phase.
type State int

const (
	StateReady State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session owns one player's board: the rank queue, drop gating, scoring and
// the deadline watch. Everything runs on the caller's goroutine; Update is
// the only place physics time moves and timers fire.
type Session struct {
	ctx      context.Context
	settings Settings
	ranks    *RankTable
	physics  Physics
	rng      *rand.Rand
	clock    *PausableClock

	scheduler *Scheduler
	bus       *Bus
	resolver  *MergeResolver
	monitor   *DeadlineMonitor
	ledger    *Ledger

	state   State
	paused  bool
	current Rank
	next    Rank
	aimX    float64

	canDrop  bool
	cooldown TimerID

	warning bool
	tick    int
	drops   int
}

// SessionOption configures NewSession.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	clock    Clock
	rng      *rand.Rand
	ranks    *RankTable
	store    HighScoreStore
	handlers []Handler
}

// WithClock sets the base time source. Defaults to the wall clock.
func WithClock(c Clock) SessionOption {
	return func(sc *sessionConfig) { sc.clock = c }
}

// WithRand sets the rank queue's random source.
func WithRand(rng *rand.Rand) SessionOption {
	return func(sc *sessionConfig) { sc.rng = rng }
}

// WithSeed seeds the rank queue deterministically.
func WithSeed(seed int64) SessionOption {
	return func(sc *sessionConfig) {
		sc.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
}

// WithRanks replaces the default rank table.
func WithRanks(t *RankTable) SessionOption {
	return func(sc *sessionConfig) { sc.ranks = t }
}

// WithStore persists the high score.
func WithStore(s HighScoreStore) SessionOption {
	return func(sc *sessionConfig) { sc.store = s }
}

// WithHandler subscribes h to the session's events before anything is
// emitted.
func WithHandler(h Handler) SessionOption {
	return func(sc *sessionConfig) { sc.handlers = append(sc.handlers, h) }
}

// NewSession builds a session in the Ready state on top of physics.
func NewSession(ctx context.Context, physics Physics, settings Settings, opts ...SessionOption) (*Session, error) {
	sc := sessionConfig{}
	for _, o := range opts {
		o(&sc)
	}
	if sc.ranks == nil {
		sc.ranks = DefaultRankTable()
	}
	if sc.rng == nil {
		sc.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
	}
	if err := settings.Validate(sc.ranks); err != nil {
		return nil, fmt.Errorf("session settings: %w", err)
	}

	s := &Session{
		ctx:      ctx,
		settings: settings,
		ranks:    sc.ranks,
		physics:  physics,
		rng:      sc.rng,
		clock:    NewPausableClock(sc.clock),
		bus:      NewBus(),
		canDrop:  true,
	}
	for _, h := range sc.handlers {
		s.bus.Subscribe(h)
	}
	s.scheduler = NewScheduler(s.clock)
	s.resolver = NewMergeResolver(physics, s.ranks, s.onResolved)
	s.monitor = NewDeadlineMonitor(physics, s.scheduler, settings.DeadlineY, settings.Grace, s.onWarning, s.onGameOver)
	s.ledger = NewLedger(sc.store, s.bus.Emit)
	s.ledger.Load(ctx)

	s.drawQueue()
	s.aimX = settings.Width / 2
	return s, nil
}

// Subscribe registers an event handler.
func (s *Session) Subscribe(h Handler) { s.bus.Subscribe(h) }

// Start moves Ready to Playing.
func (s *Session) Start() bool {
	if s.state != StateReady {
		return false
	}
	s.setState(StatePlaying)
	return true
}

// SetAim moves the drop cursor, clamped for the current token.
func (s *Session) SetAim(x float64) {
	s.aimX = s.settings.ClampX(x, s.ranks.Radius(s.current))
}

// Aim returns the clamped drop cursor.
func (s *Session) Aim() float64 { return s.aimX }

// RequestDrop spawns the current token above x. It is silently refused
// unless the session is playing, unpaused and off cooldown.
func (s *Session) RequestDrop(x float64) bool {
	if s.state != StatePlaying || s.paused || !s.canDrop {
		return false
	}
	rank := s.current
	x = s.settings.ClampX(x, s.ranks.Radius(rank))
	s.physics.AddToken(rank, x, s.settings.SpawnY)
	s.drops++

	s.current = s.next
	s.next = s.ranks.RandomDroppable(s.rng)
	s.aimX = s.settings.ClampX(x, s.ranks.Radius(s.current))

	s.canDrop = false
	var id TimerID
	id = s.scheduler.After(s.settings.DropCooldown, func() {
		if id != s.cooldown {
			return
		}
		s.cooldown = 0
		s.canDrop = true
	})
	s.cooldown = id

	s.bus.Emit(Event{Kind: EventDrop, Rank: rank, X: x, Y: s.settings.SpawnY})
	return true
}

// DropAtAim drops at the current cursor.
func (s *Session) DropAtAim() bool { return s.RequestDrop(s.aimX) }

// Update advances one frame of dt. Ready and paused sessions do nothing.
// After game over physics keeps settling but contacts no longer merge.
func (s *Session) Update(dt time.Duration) {
	if s.state == StateReady || s.paused {
		return
	}
	s.tick++
	s.bus.SetTick(s.tick)

	s.physics.Advance(dt)
	contacts := s.physics.DrainContacts()
	if s.state == StatePlaying {
		s.resolver.Resolve(contacts)
	}
	s.scheduler.Fire()
	if s.state == StatePlaying {
		s.monitor.Check()
	}
}

// Pause suspends ticking and freezes session time.
func (s *Session) Pause() bool {
	if s.state != StatePlaying || s.paused {
		return false
	}
	s.paused = true
	s.clock.Pause()
	return true
}

// Resume continues a paused session.
func (s *Session) Resume() bool {
	if !s.paused {
		return false
	}
	s.paused = false
	s.clock.Resume()
	return true
}

// TogglePause flips between paused and running.
func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Restart wipes the board and starts a new game immediately.
func (s *Session) Restart() {
	s.reset()
	s.setState(StatePlaying)
}

// ReturnToMenu wipes the board and waits in Ready.
func (s *Session) ReturnToMenu() {
	s.reset()
	s.setState(StateReady)
}

// Close persists the high score.
func (s *Session) Close() {
	s.ledger.Flush(s.ctx)
}

func (s *Session) reset() {
	if s.paused {
		s.paused = false
		s.clock.Resume()
	}
	if s.cooldown != 0 {
		s.scheduler.Cancel(s.cooldown)
		s.cooldown = 0
	}
	s.monitor.Reset()
	s.scheduler.CancelAll()
	s.resolver.Reset()
	s.physics.Clear()

	s.ledger.Flush(s.ctx)
	s.ledger.Reset()

	s.canDrop = true
	s.warning = false
	s.tick = 0
	s.drops = 0
	s.bus.SetTick(0)
	s.drawQueue()
	s.aimX = s.settings.Width / 2
}

func (s *Session) drawQueue() {
	s.current = s.ranks.RandomDroppable(s.rng)
	s.next = s.ranks.RandomDroppable(s.rng)
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	s.bus.Emit(Event{Kind: EventStateChanged, From: from, To: to})
}

func (s *Session) onResolved(ev Event) {
	s.bus.Emit(ev)
	s.ledger.Add(ev.Score)
}

func (s *Session) onWarning(active bool) {
	s.warning = active
	s.bus.Emit(Event{Kind: EventDeadlineWarning, Warning: active})
}

func (s *Session) onGameOver() {
	if s.state != StatePlaying {
		return
	}
	if s.cooldown != 0 {
		s.scheduler.Cancel(s.cooldown)
		s.cooldown = 0
	}
	s.canDrop = false
	s.ledger.Flush(s.ctx)
	s.bus.Emit(Event{Kind: EventGameOver, Score: s.ledger.Score()})
	s.setState(StateGameOver)
}

// State returns the session phase.
func (s *Session) State() State { return s.state }

// Paused reports whether ticking is suspended.
func (s *Session) Paused() bool { return s.paused }

// CanDrop reports whether a drop would be accepted right now.
func (s *Session) CanDrop() bool {
	return s.state == StatePlaying && !s.paused && s.canDrop
}

// Current is the rank the next drop will use.
func (s *Session) Current() Rank { return s.current }

// Next is the rank queued after Current.
func (s *Session) Next() Rank { return s.next }

// Score is the running total.
func (s *Session) Score() int { return s.ledger.Score() }

// HighScore is the best total seen.
func (s *Session) HighScore() int { return s.ledger.HighScore() }

// Ranks returns the rank table in use.
func (s *Session) Ranks() *RankTable { return s.ranks }

// Settings returns the container tuning.
func (s *Session) Settings() Settings { return s.settings }

// Physics exposes the underlying simulation.
func (s *Session) Physics() Physics { return s.physics }

// Resolver exposes the merge resolver.
func (s *Session) Resolver() *MergeResolver { return s.resolver }

// Monitor exposes the deadline monitor.
func (s *Session) Monitor() *DeadlineMonitor { return s.monitor }

// Scheduler exposes the timer scheduler.
func (s *Session) Scheduler() *Scheduler { return s.scheduler }

// Snapshot is a read-only view for frontends.
type Snapshot struct {
	State     State
	Paused    bool
	Tick      int
	Tokens    []Token
	Current   Rank
	Next      Rank
	AimX      float64
	CanDrop   bool
	Score     int
	HighScore int
	Merges    int
	Drops     int
	Warning   bool
	GraceLeft time.Duration
}

// Snapshot captures the session for drawing.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:     s.state,
		Paused:    s.paused,
		Tick:      s.tick,
		Tokens:    s.physics.Tokens(),
		Current:   s.current,
		Next:      s.next,
		AimX:      s.aimX,
		CanDrop:   s.CanDrop(),
		Score:     s.ledger.Score(),
		HighScore: s.ledger.HighScore(),
		Merges:    s.ledger.Merges(),
		Drops:     s.drops,
		Warning:   s.warning,
		GraceLeft: s.monitor.Remaining(),
	}
}
