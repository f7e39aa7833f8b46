package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMergeScore_Triangular(t *testing.T) {
	cases := map[Rank]int{0: 0, 1: 0, 2: 1, 3: 3, 4: 6, 5: 10, 10: 45, 11: 55}
	for r, want := range cases {
		if got := MergeScore(r); got != want {
			t.Fatalf("MergeScore(%d): expected %d, got %d", r, want, got)
		}
	}
}

func TestDefaultRankTable_Shape(t *testing.T) {
	rt := DefaultRankTable()
	if rt.MaxRank() != 11 {
		t.Fatalf("expected 11 ranks, got %d", rt.MaxRank())
	}
	if rt.Droppable() != DefaultDroppable {
		t.Fatalf("expected droppable prefix %d, got %d", DefaultDroppable, rt.Droppable())
	}
	if rt.TerminalBonus() <= rt.Score(rt.MaxRank()) {
		t.Fatalf("terminal bonus %d should exceed top merge score %d", rt.TerminalBonus(), rt.Score(rt.MaxRank()))
	}

	all := rt.All()
	for i, info := range all {
		if info.Rank != Rank(i+1) {
			t.Fatalf("row %d has rank %d", i, info.Rank)
		}
		if i > 0 && info.Radius <= all[i-1].Radius {
			t.Fatalf("radius not increasing at rank %d: %.0f <= %.0f", info.Rank, info.Radius, all[i-1].Radius)
		}
		if info.Droppable != (i < DefaultDroppable) {
			t.Fatalf("rank %d droppable=%v", info.Rank, info.Droppable)
		}
		if info.Name == "" {
			t.Fatalf("rank %d has no name", info.Rank)
		}
	}
}

func TestRankTable_OutOfRange(t *testing.T) {
	rt := DefaultRankTable()
	for _, r := range []Rank{0, -1, 12} {
		if rt.Valid(r) {
			t.Fatalf("rank %d should be invalid", r)
		}
		if rt.Radius(r) != 0 || rt.Score(r) != 0 {
			t.Fatalf("rank %d should have zero radius and score", r)
		}
	}
}

func TestNewRankTable_Errors(t *testing.T) {
	cases := []struct {
		name      string
		radii     []float64
		droppable int
		bonus     int
		want      error
	}{
		{"empty", nil, 1, 10, ErrNoRanks},
		{"not increasing", []float64{10, 10, 20}, 1, 10, ErrRadiusOrder},
		{"non-positive", []float64{0, 10, 20}, 1, 10, ErrRadiusOrder},
		{"droppable zero", []float64{10, 20, 30}, 0, 10, ErrDroppablePrefix},
		{"droppable all", []float64{10, 20, 30}, 3, 10, ErrDroppablePrefix},
		{"bonus too small", []float64{10, 20, 30}, 1, 3, ErrTerminalBonus},
	}
	for _, c := range cases {
		_, err := NewRankTable(c.radii, c.droppable, c.bonus)
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}

func TestNewRankTable_SmallTable(t *testing.T) {
	rt, err := NewRankTable([]float64{10, 20, 30}, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.MaxRank() != 3 || rt.TerminalBonus() != 4 {
		t.Fatalf("unexpected table: max=%d bonus=%d", rt.MaxRank(), rt.TerminalBonus())
	}
}

func TestRandomDroppable_StaysInPrefix(t *testing.T) {
	rt := DefaultRankTable()
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test only
	seen := map[Rank]bool{}
	for i := 0; i < 1000; i++ {
		r := rt.RandomDroppable(rng)
		if r < 1 || int(r) > rt.Droppable() {
			t.Fatalf("draw %d out of droppable prefix: %d", i, r)
		}
		seen[r] = true
	}
	if len(seen) != rt.Droppable() {
		t.Fatalf("expected every droppable rank to appear, saw %v", seen)
	}
}
