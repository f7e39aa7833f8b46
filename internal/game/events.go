package game

// EventKind tags an Event.
type EventKind int

const (
	EventMerge EventKind = iota
	EventVanish
	EventDrop
	EventDeadlineWarning
	EventGameOver
	EventScoreChanged
	EventStateChanged
)

func (k EventKind) String() string {
	switch k {
	case EventMerge:
		return "merge"
	case EventVanish:
		return "vanish"
	case EventDrop:
		return "drop"
	case EventDeadlineWarning:
		return "deadline_warning"
	case EventGameOver:
		return "game_over"
	case EventScoreChanged:
		return "score_changed"
	case EventStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Event is what the core tells its consumers. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind EventKind
	Tick int

	Rank  Rank    // merge: produced rank; drop: dropped rank
	X, Y  float64 // merge/vanish: midpoint; drop: spawn point
	Score int     // merge/vanish: points awarded; score_changed: running total

	HighScore int // score_changed
	Merges    int // score_changed

	Warning bool // deadline_warning: true when the grace countdown starts

	From, To State // state_changed
}

// Handler receives events synchronously.
type Handler func(Event)

// Bus fans events out to handlers in registration order on the emitting
// goroutine.
type Bus struct {
	handlers []Handler
	tick     int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h. Handlers cannot be removed.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// SetTick stamps subsequent events with tick.
func (b *Bus) SetTick(tick int) { b.tick = tick }

// Emit delivers ev to every handler.
func (b *Bus) Emit(ev Event) {
	ev.Tick = b.tick
	for _, h := range b.handlers {
		h(ev)
	}
}
