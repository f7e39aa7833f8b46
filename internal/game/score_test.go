package game

import (
	"context"
	"testing"
)

func TestLedger_AddTracksHighScore(t *testing.T) {
	var last Event
	l := NewLedger(nil, func(ev Event) { last = ev })
	l.Add(3)
	l.Add(6)
	if l.Score() != 9 || l.HighScore() != 9 || l.Merges() != 2 {
		t.Fatalf("expected score=9 high=9 merges=2, got %d %d %d", l.Score(), l.HighScore(), l.Merges())
	}
	if last.Kind != EventScoreChanged || last.Score != 9 || last.HighScore != 9 {
		t.Fatalf("expected a score_changed event, got %+v", last)
	}

	l.Reset()
	if l.Score() != 0 || l.Merges() != 0 || l.HighScore() != 9 {
		t.Fatalf("reset must keep only the high score")
	}
	l.Add(1)
	if l.HighScore() != 9 {
		t.Fatalf("a lower score must not replace the high score")
	}
}

func TestLedger_LoadFailsOpen(t *testing.T) {
	st := &memStore{loadErr: errStoreDown}
	l := NewLedger(st, nil)
	l.Load(context.Background())
	if l.HighScore() != 0 {
		t.Fatalf("unreadable storage should count as 0, got %d", l.HighScore())
	}
	l.Add(10)
	if l.Score() != 10 {
		t.Fatalf("ledger must keep scoring without storage")
	}
}

func TestLedger_NegativeStoredValueIsZero(t *testing.T) {
	l := NewLedger(&memStore{value: -40}, nil)
	l.Load(context.Background())
	if l.HighScore() != 0 {
		t.Fatalf("expected negative stored value to load as 0, got %d", l.HighScore())
	}
}

func TestLedger_FlushOnlyWhenImproved(t *testing.T) {
	st := &memStore{value: 50}
	l := NewLedger(st, nil)
	l.Load(context.Background())

	l.Add(20)
	l.Flush(context.Background())
	if st.saves != 0 {
		t.Fatalf("score below the stored best must not be written")
	}
	l.Add(40)
	l.Flush(context.Background())
	l.Flush(context.Background())
	if st.saves != 1 || st.value != 60 {
		t.Fatalf("expected one save of 60, got %d saves value %d", st.saves, st.value)
	}
}

func TestLedger_SaveFailureKeepsPlaying(t *testing.T) {
	st := &memStore{saveErr: errStoreDown}
	l := NewLedger(st, nil)
	l.Add(5)
	l.Flush(context.Background())
	if l.HighScore() != 5 {
		t.Fatalf("high score should stay in memory after a failed save")
	}

	st.saveErr = nil
	l.Flush(context.Background())
	if st.value != 5 {
		t.Fatalf("a later flush should retry the write, stored %d", st.value)
	}
}

func TestSession_StoreFailureIsInvisible(t *testing.T) {
	st := &memStore{loadErr: errStoreDown, saveErr: errStoreDown}
	ts := newSim(t, WithSimStore(st))
	p := ts.Scripted()
	a := p.AddToken(1, 100, 500)
	b := p.AddToken(1, 130, 500)
	p.Touch(a, b)
	ts.RunTicks(1)
	ts.Session.Restart()
	if ts.Session.HighScore() != 1 {
		t.Fatalf("expected in-memory high score 1, got %d", ts.Session.HighScore())
	}
}
