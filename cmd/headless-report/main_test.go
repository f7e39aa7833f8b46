package main

import (
	"testing"

	"github.com/Garsondee/Fruit-Drop/internal/game"
)

func TestParseOptions_RejectsBadInput(t *testing.T) {
	if _, err := parseOptions(0, 100, 1, 1, "match"); err == nil {
		t.Fatal("expected error for zero runs")
	}
	if _, err := parseOptions(1, 0, 1, 1, "match"); err == nil {
		t.Fatal("expected error for zero ticks")
	}
	if _, err := parseOptions(1, 100, 1, 1, "greedy"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestParseOptions_Strategy(t *testing.T) {
	opts, err := parseOptions(3, 100, 7, 2, "center")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.strategy != game.StrategyCenter {
		t.Fatalf("expected center strategy, got %s", opts.strategy)
	}
	if opts.runs != 3 || opts.ticks != 100 || opts.seedBase != 7 || opts.seedStep != 2 {
		t.Fatalf("options not carried through: %+v", opts)
	}
}

func TestRunOne_DropsOnRealPhysics(t *testing.T) {
	rs := runOne(1, 42, 600, game.StrategyMatch)
	if rs.report.Drops == 0 {
		t.Fatal("expected the bot to drop at least once")
	}
	if rs.drops != rs.report.Drops {
		t.Fatalf("sim log drops=%d, report drops=%d", rs.drops, rs.report.Drops)
	}
	if rs.report.Ticks == 0 || rs.report.Ticks > 600 {
		t.Fatalf("ticks out of range: %d", rs.report.Ticks)
	}
	if !rs.report.GameOver && rs.report.Ticks != 600 {
		t.Fatalf("run stopped early without game over at tick %d", rs.report.Ticks)
	}
}
