package game

import (
	"context"
	"log"
)

// HighScoreKey is the storage key for the persisted high score.
const HighScoreKey = "high_score"

// HighScoreStore persists a single high-score value.
type HighScoreStore interface {
	LoadHighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}

// Ledger keeps the running score, merge count and high score. Storage is
// best effort: when it fails the ledger keeps working from memory.
type Ledger struct {
	score     int
	merges    int
	highScore int
	persisted int // high score last known to be in storage

	store HighScoreStore
	emit  func(Event)
}

// NewLedger creates a ledger. store may be nil.
func NewLedger(store HighScoreStore, emit func(Event)) *Ledger {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Ledger{store: store, emit: emit}
}

// Load reads the persisted high score. Missing, negative or unreadable
// values count as zero.
func (l *Ledger) Load(ctx context.Context) {
	if l.store == nil {
		return
	}
	v, err := l.store.LoadHighScore(ctx)
	if err != nil {
		log.Printf("high score unavailable, starting from 0: %v", err)
		return
	}
	if v < 0 {
		v = 0
	}
	l.persisted = v
	if v > l.highScore {
		l.highScore = v
	}
}

// Add credits points from one merge or vanish.
func (l *Ledger) Add(points int) {
	l.score += points
	l.merges++
	if l.score > l.highScore {
		l.highScore = l.score
	}
	l.changed()
}

// Reset zeroes the session score and merge count; the high score survives.
func (l *Ledger) Reset() {
	l.score = 0
	l.merges = 0
	l.changed()
}

// Flush writes the high score if it grew since the last write.
func (l *Ledger) Flush(ctx context.Context) {
	if l.store == nil || l.highScore <= l.persisted {
		return
	}
	if err := l.store.SaveHighScore(ctx, l.highScore); err != nil {
		log.Printf("save high score: %v", err)
		return
	}
	l.persisted = l.highScore
}

// Score is the running total.
func (l *Ledger) Score() int { return l.score }

// HighScore is the best total seen, including the persisted value.
func (l *Ledger) HighScore() int { return l.highScore }

// Merges counts merges and vanishes this session.
func (l *Ledger) Merges() int { return l.merges }

func (l *Ledger) changed() {
	l.emit(Event{Kind: EventScoreChanged, Score: l.score, HighScore: l.highScore, Merges: l.merges})
}
