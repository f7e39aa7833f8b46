package game

// MergeResolver turns contact-start pairs into merges. It guarantees a token
// is consumed by at most one merge: once a pair commits, neither identity can
// join another pair until both sources are gone from physics.
type MergeResolver struct {
	physics  Physics
	ranks    *RankTable
	emit     func(Event)
	inFlight map[TokenID]struct{}
}

// NewMergeResolver creates a resolver that mutates physics and reports
// merge/vanish events through emit.
func NewMergeResolver(physics Physics, ranks *RankTable, emit func(Event)) *MergeResolver {
	if emit == nil {
		emit = func(Event) {}
	}
	return &MergeResolver{
		physics:  physics,
		ranks:    ranks,
		emit:     emit,
		inFlight: make(map[TokenID]struct{}),
	}
}

// OnCollision evaluates one reported pair. It reports whether a merge or
// vanish happened; a false result had no side effects.
func (mr *MergeResolver) OnCollision(a, b TokenID) bool {
	if a == b {
		return false
	}
	// Walls and bodies already merged away earlier in this pass are not tokens.
	ta, ok := mr.physics.Token(a)
	if !ok {
		return false
	}
	tb, ok := mr.physics.Token(b)
	if !ok {
		return false
	}
	if ta.Rank != tb.Rank {
		return false
	}
	if mr.busy(a) || mr.busy(b) {
		return false
	}

	mr.inFlight[a] = struct{}{}
	mr.inFlight[b] = struct{}{}

	mx := (ta.X + tb.X) / 2
	my := (ta.Y + tb.Y) / 2
	mr.physics.RemoveTokens(a, b)

	delete(mr.inFlight, a)
	delete(mr.inFlight, b)

	if ta.Rank >= mr.ranks.MaxRank() {
		mr.emit(Event{Kind: EventVanish, X: mx, Y: my, Score: mr.ranks.TerminalBonus()})
		return true
	}

	next := ta.Rank + 1
	mr.physics.AddToken(next, mx, my)
	mr.emit(Event{Kind: EventMerge, Rank: next, X: mx, Y: my, Score: mr.ranks.Score(next)})
	return true
}

// Resolve feeds contacts through OnCollision in order and returns how many
// produced a merge or vanish.
func (mr *MergeResolver) Resolve(contacts []Contact) int {
	n := 0
	for _, c := range contacts {
		if mr.OnCollision(c.A, c.B) {
			n++
		}
	}
	return n
}

// InFlight is the number of identities currently committed to a merge.
func (mr *MergeResolver) InFlight() int { return len(mr.inFlight) }

// Reset empties the in-flight set.
func (mr *MergeResolver) Reset() {
	clear(mr.inFlight)
}

func (mr *MergeResolver) busy(id TokenID) bool {
	_, ok := mr.inFlight[id]
	return ok
}
