package game

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ScriptedPhysics is a Physics with no dynamics: tokens stay where they are
// put and contacts only happen when a test calls Touch. It lets tests drive
// the merge and deadline logic pair by pair.
type ScriptedPhysics struct {
	ranks    *RankTable
	tokens   map[TokenID]Token
	nextID   TokenID
	contacts []Contact

	// OnAdvance, if set, runs at the end of every Advance.
	OnAdvance func(p *ScriptedPhysics, dt time.Duration)

	Added   int
	Removed int
	Elapsed time.Duration
}

// NewScriptedPhysics creates an empty scripted world.
func NewScriptedPhysics(ranks *RankTable) *ScriptedPhysics {
	if ranks == nil {
		ranks = DefaultRankTable()
	}
	return &ScriptedPhysics{ranks: ranks, tokens: make(map[TokenID]Token)}
}

func (p *ScriptedPhysics) Advance(dt time.Duration) {
	p.Elapsed += dt
	if p.OnAdvance != nil {
		p.OnAdvance(p, dt)
	}
}

func (p *ScriptedPhysics) AddToken(rank Rank, x, y float64) TokenID {
	p.nextID++
	p.tokens[p.nextID] = Token{ID: p.nextID, Rank: rank, X: x, Y: y, Radius: p.ranks.Radius(rank)}
	p.Added++
	return p.nextID
}

func (p *ScriptedPhysics) RemoveTokens(ids ...TokenID) {
	for _, id := range ids {
		if _, ok := p.tokens[id]; ok {
			delete(p.tokens, id)
			p.Removed++
		}
	}
}

func (p *ScriptedPhysics) Token(id TokenID) (Token, bool) {
	t, ok := p.tokens[id]
	return t, ok
}

func (p *ScriptedPhysics) Tokens() []Token {
	out := make([]Token, 0, len(p.tokens))
	for _, t := range p.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (p *ScriptedPhysics) DrainContacts() []Contact {
	out := p.contacts
	p.contacts = nil
	return out
}

func (p *ScriptedPhysics) Clear() {
	clear(p.tokens)
	p.contacts = nil
}

// Touch queues a contact-start pair for the next drain.
func (p *ScriptedPhysics) Touch(a, b TokenID) {
	p.contacts = append(p.contacts, Contact{A: a, B: b})
}

// Move teleports a token.
func (p *ScriptedPhysics) Move(id TokenID, x, y float64) {
	if t, ok := p.tokens[id]; ok {
		t.X, t.Y = x, y
		p.tokens[id] = t
	}
}

// LastID is the most recently issued identity.
func (p *ScriptedPhysics) LastID() TokenID { return p.nextID }

// CountRank counts live tokens of rank r.
func (p *ScriptedPhysics) CountRank(r Rank) int {
	n := 0
	for _, t := range p.tokens {
		if t.Rank == r {
			n++
		}
	}
	return n
}

// TestSim is a headless session harness. It runs Session.Update on a manual
// clock so timer behaviour is exact and repeatable. Tests use it with
// ScriptedPhysics; the headless report uses it with real physics.
type TestSim struct {
	Session  *Session
	Physics  Physics
	Clock    *ManualClock
	SimLog   *SimLog
	Reporter *RunReporter
	TickDur  time.Duration

	settings  Settings
	seed      int64
	store     HighScoreStore
	ranks     *RankTable
	autoStart bool
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithSimPhysics runs the session on p instead of ScriptedPhysics.
func WithSimPhysics(p Physics) SimOption {
	return func(ts *TestSim) { ts.Physics = p }
}

// WithSimSettings sets the container tuning.
func WithSimSettings(s Settings) SimOption {
	return func(ts *TestSim) { ts.settings = s }
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return func(ts *TestSim) { ts.seed = seed }
}

// WithSimStore attaches a high score store.
func WithSimStore(s HighScoreStore) SimOption {
	return func(ts *TestSim) { ts.store = s }
}

// WithSimRanks replaces the rank table.
func WithSimRanks(t *RankTable) SimOption {
	return func(ts *TestSim) { ts.ranks = t }
}

// WithVerbose records score_changed entries in the SimLog.
func WithVerbose(v bool) SimOption {
	return func(ts *TestSim) { ts.SimLog = NewSimLog(v) }
}

// WithTickDuration sets the fixed step per tick.
func WithTickDuration(d time.Duration) SimOption {
	return func(ts *TestSim) { ts.TickDur = d }
}

// WithAutoStart controls whether the session starts in Playing (default) or
// waits in Ready.
func WithAutoStart(start bool) SimOption {
	return func(ts *TestSim) { ts.autoStart = start }
}

// NewTestSim constructs a TestSim. It panics on invalid settings, which only
// a broken test can produce.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Clock:     NewManualClock(time.Unix(0, 0)),
		SimLog:    NewSimLog(false),
		TickDur:   time.Second / 60,
		settings:  DefaultSettings(),
		seed:      1,
		autoStart: true,
	}
	for _, o := range opts {
		o(ts)
	}
	if ts.ranks == nil {
		ts.ranks = DefaultRankTable()
	}
	if ts.Physics == nil {
		ts.Physics = NewScriptedPhysics(ts.ranks)
	}
	ts.Reporter = NewRunReporter()

	s, err := NewSession(context.Background(), ts.Physics, ts.settings,
		WithClock(ts.Clock),
		WithSeed(ts.seed),
		WithRanks(ts.ranks),
		WithStore(ts.store),
		WithHandler(ts.SimLog.Record),
		WithHandler(ts.Reporter.Record),
	)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Session = s
	if ts.autoStart {
		s.Start()
	}
	return ts
}

// Scripted returns the physics as ScriptedPhysics, or nil when the sim runs
// on something else.
func (ts *TestSim) Scripted() *ScriptedPhysics {
	p, _ := ts.Physics.(*ScriptedPhysics)
	return p
}

// Elapse moves the clock by d without ticking.
func (ts *TestSim) Elapse(d time.Duration) {
	ts.Clock.Advance(d)
}

// RunTicks advances the clock and the session n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunFor ticks until at least d of clock time has passed.
func (ts *TestSim) RunFor(d time.Duration) {
	end := ts.Clock.Now().Add(d)
	for ts.Clock.Now().Before(end) {
		ts.step()
	}
}

// RunUntil advances up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

func (ts *TestSim) step() {
	ts.Clock.Advance(ts.TickDur)
	ts.Session.Update(ts.TickDur)
}

// CurrentTick returns the session tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Session.tick
}

// Report returns the run tally with the tick count brought up to date.
func (ts *TestSim) Report() RunReport {
	r := ts.Reporter.Report()
	if t := ts.CurrentTick(); t > r.Ticks {
		r.Ticks = t
	}
	return r
}
