package game

import "testing"

func newResolverForTest(t *testing.T) (*MergeResolver, *ScriptedPhysics, *[]Event) {
	t.Helper()
	ranks := DefaultRankTable()
	p := NewScriptedPhysics(ranks)
	var events []Event
	mr := NewMergeResolver(p, ranks, func(ev Event) { events = append(events, ev) })
	return mr, p, &events
}

func TestOnCollision_EqualRanksMerge(t *testing.T) {
	mr, p, events := newResolverForTest(t)
	a := p.AddToken(1, 100, 400)
	b := p.AddToken(1, 120, 420)

	if !mr.OnCollision(a, b) {
		t.Fatalf("expected equal ranks to merge")
	}
	toks := p.Tokens()
	if len(toks) != 1 || toks[0].Rank != 2 {
		t.Fatalf("expected one rank-2 token, got %+v", toks)
	}
	if toks[0].X != 110 || toks[0].Y != 410 {
		t.Fatalf("expected merge at the midpoint (110,410), got (%.0f,%.0f)", toks[0].X, toks[0].Y)
	}
	if len(*events) != 1 || (*events)[0].Kind != EventMerge || (*events)[0].Score != 1 || (*events)[0].Rank != 2 {
		t.Fatalf("expected one merge event scoring 1, got %+v", *events)
	}
	if mr.InFlight() != 0 {
		t.Fatalf("in-flight set should be empty after a merge, got %d", mr.InFlight())
	}
}

func TestOnCollision_RejectsNonMatches(t *testing.T) {
	mr, p, events := newResolverForTest(t)
	a := p.AddToken(1, 100, 400)
	b := p.AddToken(2, 130, 400)

	if mr.OnCollision(a, b) {
		t.Fatalf("different ranks must not merge")
	}
	if mr.OnCollision(a, a) {
		t.Fatalf("a token must not merge with itself")
	}
	if mr.OnCollision(a, 0) || mr.OnCollision(0, a) {
		t.Fatalf("wall contacts must not merge")
	}
	if mr.OnCollision(a, 999) {
		t.Fatalf("unknown identities must not merge")
	}
	if len(p.Tokens()) != 2 || len(*events) != 0 || p.Removed != 0 {
		t.Fatalf("rejected pairs must have no side effects")
	}
}

func TestOnCollision_MaxRankVanishes(t *testing.T) {
	mr, p, events := newResolverForTest(t)
	top := DefaultRankTable().MaxRank()
	a := p.AddToken(top, 150, 400)
	b := p.AddToken(top, 250, 400)

	if !mr.OnCollision(a, b) {
		t.Fatalf("expected max-rank pair to resolve")
	}
	if len(p.Tokens()) != 0 {
		t.Fatalf("expected both max-rank tokens removed, got %d", len(p.Tokens()))
	}
	if p.Added != 2 {
		t.Fatalf("vanish must not spawn a token")
	}
	ev := (*events)[0]
	if ev.Kind != EventVanish || ev.Score != DefaultTerminalBonus {
		t.Fatalf("expected vanish scoring %d, got %+v", DefaultTerminalBonus, ev)
	}
}

func TestResolve_TripleCollisionMergesOnce(t *testing.T) {
	mr, p, events := newResolverForTest(t)
	a := p.AddToken(1, 100, 400)
	b := p.AddToken(1, 120, 400)
	c := p.AddToken(1, 110, 380)

	n := mr.Resolve([]Contact{{A: a, B: b}, {A: b, B: c}, {A: a, B: c}})
	if n != 1 {
		t.Fatalf("expected exactly one merge from three mutual contacts, got %d", n)
	}
	if p.CountRank(1) != 1 || p.CountRank(2) != 1 {
		t.Fatalf("expected one rank-1 and one rank-2 left, got r1=%d r2=%d", p.CountRank(1), p.CountRank(2))
	}
	if _, ok := p.Token(c); !ok {
		t.Fatalf("the uninvolved third token should survive")
	}
	if len(*events) != 1 {
		t.Fatalf("expected one event, got %d", len(*events))
	}
}

func TestResolve_DuplicateContactsMergeOnce(t *testing.T) {
	mr, p, _ := newResolverForTest(t)
	a := p.AddToken(3, 100, 400)
	b := p.AddToken(3, 150, 400)

	n := mr.Resolve([]Contact{{A: a, B: b}, {A: b, B: a}, {A: a, B: b}})
	if n != 1 {
		t.Fatalf("expected one merge for repeated pair reports, got %d", n)
	}
	if p.CountRank(4) != 1 || len(p.Tokens()) != 1 {
		t.Fatalf("expected a single rank-4 token, got %+v", p.Tokens())
	}
}

func TestResolve_ChainReaction(t *testing.T) {
	mr, p, events := newResolverForTest(t)
	a := p.AddToken(1, 100, 500)
	b := p.AddToken(1, 120, 500)
	c := p.AddToken(2, 140, 500)

	mr.Resolve([]Contact{{A: a, B: b}})
	merged := p.LastID()
	// The new rank-2 token lands against the existing one on a later pass.
	if n := mr.Resolve([]Contact{{A: merged, B: c}}); n != 1 {
		t.Fatalf("expected the produced token to merge again")
	}
	if p.CountRank(3) != 1 || len(p.Tokens()) != 1 {
		t.Fatalf("expected a single rank-3 token, got %+v", p.Tokens())
	}
	total := 0
	for _, ev := range *events {
		total += ev.Score
	}
	if total != MergeScore(2)+MergeScore(3) {
		t.Fatalf("expected chain to score %d, got %d", MergeScore(2)+MergeScore(3), total)
	}
}

func TestResolve_TwoDisjointPairsInOnePass(t *testing.T) {
	mr, p, _ := newResolverForTest(t)
	a := p.AddToken(2, 50, 500)
	b := p.AddToken(2, 80, 500)
	c := p.AddToken(4, 250, 500)
	d := p.AddToken(4, 320, 500)

	if n := mr.Resolve([]Contact{{A: a, B: b}, {A: c, B: d}}); n != 2 {
		t.Fatalf("expected both pairs to merge, got %d", n)
	}
	if p.CountRank(3) != 1 || p.CountRank(5) != 1 {
		t.Fatalf("unexpected board %+v", p.Tokens())
	}
}

func TestMergeResolver_Reset(t *testing.T) {
	mr, _, _ := newResolverForTest(t)
	mr.inFlight[5] = struct{}{}
	mr.Reset()
	if mr.InFlight() != 0 {
		t.Fatalf("expected empty in-flight set after reset")
	}
}

func TestOnCollision_BusyTokenRejected(t *testing.T) {
	mr, p, _ := newResolverForTest(t)
	a := p.AddToken(1, 100, 400)
	b := p.AddToken(1, 120, 400)
	mr.inFlight[a] = struct{}{}
	if mr.OnCollision(a, b) {
		t.Fatalf("a token already committed to a merge must not join another")
	}
}
