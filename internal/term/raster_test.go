package term

import (
	"testing"

	"github.com/Garsondee/Fruit-Drop/internal/game"
)

func TestRasterize_FixturesAndTokens(t *testing.T) {
	set := game.DefaultSettings()
	snap := game.Snapshot{
		State: game.StatePlaying,
		AimX:  set.Width / 2,
		Tokens: []game.Token{
			{ID: 1, Rank: 3, X: set.Width / 2, Y: 600, Radius: 25},
		},
	}
	g := Rasterize(snap, set, 42, 64) // 10x10 units per cell

	if g.At(0, 30) != cellWall || g.At(41, 30) != cellWall {
		t.Fatalf("expected walls at the edges")
	}
	if g.At(10, 10) != cellDeadline {
		t.Fatalf("expected the deadline on row 10, got %d", g.At(10, 10))
	}
	if g.At(21, 60) != 3 {
		t.Fatalf("expected the token centre to rasterise as rank 3, got %d", g.At(21, 60))
	}
	if g.At(21, 30) != cellGuide {
		t.Fatalf("expected the aim guide below the spawn point, got %d", g.At(21, 30))
	}
	if g.At(10, 50) != cellEmpty {
		t.Fatalf("expected empty space, got %d", g.At(10, 50))
	}
	if g.At(-1, 0) != cellEmpty || g.At(0, 99) != cellEmpty {
		t.Fatalf("out of range should read empty")
	}
}

func TestRasterize_NoGuideOutsidePlay(t *testing.T) {
	set := game.DefaultSettings()
	g := Rasterize(game.Snapshot{State: game.StateReady, AimX: set.Width / 2}, set, 42, 64)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(c, r) == cellGuide {
				t.Fatalf("guide drawn while not playing at (%d,%d)", c, r)
			}
		}
	}
}

func TestRasterize_EmptyGrid(t *testing.T) {
	g := Rasterize(game.Snapshot{}, game.DefaultSettings(), 0, 0)
	if g.Cols != 0 || len(g.Cells) != 0 {
		t.Fatalf("expected an empty grid")
	}
}
