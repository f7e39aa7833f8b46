package audio

import (
	"math"
	"testing"

	"github.com/Garsondee/Fruit-Drop/internal/game"
)

func TestFrequencyRisesWithRank(t *testing.T) {
	if Frequency(1) != baseFreq {
		t.Fatalf("rank 1 should play the base pitch")
	}
	if got := Frequency(7); math.Abs(got-baseFreq*2) > 0.01 {
		t.Fatalf("rank 7 should be an octave up, got %.2f", got)
	}
	for r := game.Rank(2); r <= 11; r++ {
		if Frequency(r) <= Frequency(r-1) {
			t.Fatalf("pitch should rise at rank %d", r)
		}
	}
	if Frequency(0) != baseFreq {
		t.Fatalf("invalid ranks should clamp to the base pitch")
	}
}

func TestCueMapping(t *testing.T) {
	if n := cue(game.Event{Kind: game.EventMerge, Rank: 4}); len(n) != 1 || n[0].freq != Frequency(4) {
		t.Fatalf("merge should play the rank pitch, got %+v", n)
	}
	if n := cue(game.Event{Kind: game.EventVanish}); len(n) != 3 {
		t.Fatalf("vanish should play a three-note run, got %d", len(n))
	}
	if n := cue(game.Event{Kind: game.EventDeadlineWarning, Warning: false}); n != nil {
		t.Fatalf("clearing the line should be silent")
	}
	if n := cue(game.Event{Kind: game.EventScoreChanged}); n != nil {
		t.Fatalf("score changes should be silent")
	}
	for _, n := range cue(game.Event{Kind: game.EventGameOver}) {
		if n.dur <= 0 || n.freq <= 0 {
			t.Fatalf("bad note %+v", n)
		}
	}
}
