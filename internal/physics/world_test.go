package physics

import (
	"context"
	"testing"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
)

const frame = time.Second / 60

func newWorldForTest(t *testing.T) (*World, game.Settings) {
	t.Helper()
	set := game.DefaultSettings()
	return NewWorld(game.DefaultRankTable(), set, DefaultOptions()), set
}

func TestWorld_TokenFallsToFloor(t *testing.T) {
	w, set := newWorldForTest(t)
	id := w.AddToken(3, set.Width/2, set.SpawnY)
	for i := 0; i < 240; i++ {
		w.Advance(frame)
	}
	tok, ok := w.Token(id)
	if !ok {
		t.Fatalf("token disappeared")
	}
	rest := set.Height - tok.Radius
	if tok.Y < rest-3 || tok.Y > rest+3 {
		t.Fatalf("expected token to rest near y=%.0f, got %.1f", rest, tok.Y)
	}
	if tok.X < set.Wall || tok.X > set.Width-set.Wall {
		t.Fatalf("token left the container: x=%.1f", tok.X)
	}
}

func TestWorld_WallsContainTokens(t *testing.T) {
	w, set := newWorldForTest(t)
	r := w.ranks.Radius(5)
	id := w.AddToken(5, set.Wall+r, set.SpawnY)
	for i := 0; i < 240; i++ {
		w.Advance(frame)
	}
	tok, _ := w.Token(id)
	if tok.X-tok.Radius < set.Wall-2 {
		t.Fatalf("token pushed into the wall: left edge %.1f", tok.X-tok.Radius)
	}
}

func TestWorld_ReportsTokenContacts(t *testing.T) {
	w, set := newWorldForTest(t)
	a := w.AddToken(1, set.Width/2-10, 500)
	b := w.AddToken(1, set.Width/2+10, 500)
	w.Advance(frame)

	contacts := w.DrainContacts()
	found := false
	for _, c := range contacts {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			found = true
		}
		if c.A == 0 || c.B == 0 {
			t.Fatalf("wall contact leaked into the token contact list: %+v", c)
		}
	}
	if !found {
		t.Fatalf("expected overlapping tokens to report a contact, got %+v", contacts)
	}
	if len(w.DrainContacts()) != 0 {
		t.Fatalf("drain should empty the buffer")
	}
}

func TestWorld_RemoveAndClear(t *testing.T) {
	w, set := newWorldForTest(t)
	a := w.AddToken(1, 100, set.SpawnY)
	w.AddToken(2, 200, set.SpawnY)
	w.AddToken(3, 300, set.SpawnY)

	w.RemoveTokens(a, a, 999)
	if w.Len() != 2 {
		t.Fatalf("expected 2 tokens after removal, got %d", w.Len())
	}
	if _, ok := w.Token(a); ok {
		t.Fatalf("removed token still visible")
	}
	toks := w.Tokens()
	if toks[0].ID >= toks[1].ID {
		t.Fatalf("tokens should be ordered by identity")
	}
	w.Clear()
	if w.Len() != 0 || len(w.Tokens()) != 0 {
		t.Fatalf("clear should empty the world")
	}
	w.Advance(frame)
}

func TestWorld_SessionMergesTwoRankOnes(t *testing.T) {
	w, set := newWorldForTest(t)
	s, err := game.NewSession(context.Background(), w, set, game.WithSeed(1))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Start()
	w.AddToken(1, set.Width/2-12, 560)
	w.AddToken(1, set.Width/2+12, 560)

	for i := 0; i < 30 && s.Score() == 0; i++ {
		s.Update(frame)
	}
	if s.Score() != 1 {
		t.Fatalf("expected the pair to merge for 1 point, got %d", s.Score())
	}
	toks := w.Tokens()
	if len(toks) != 1 || toks[0].Rank != 2 {
		t.Fatalf("expected a single rank-2 token, got %+v", toks)
	}
}

func TestWorld_StackedDropsMergeOnLanding(t *testing.T) {
	w, set := newWorldForTest(t)
	s, err := game.NewSession(context.Background(), w, set, game.WithSeed(1))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Start()
	w.AddToken(1, set.Width/2, 400)
	w.AddToken(1, set.Width/2, 300)

	landed := -1
	for i := 0; i < 180; i++ {
		s.Update(frame)
		if s.Score() > 0 {
			landed = i
			break
		}
	}
	if landed < 0 {
		t.Fatalf("expected the upper token to merge on landing, board %+v", w.Tokens())
	}
	if w.Len() != 1 {
		t.Fatalf("expected one token after the merge, got %d", w.Len())
	}
}
