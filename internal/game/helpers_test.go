package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

// testTick divides the grace and cooldown durations exactly.
const testTick = 10 * time.Millisecond

// testSettings spawns below the deadline so a plain drop does not start a
// countdown on scripted physics, where nothing falls.
func testSettings() Settings {
	s := DefaultSettings()
	s.SpawnY = 300
	return s
}

func newSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	base := []SimOption{WithSimSettings(testSettings()), WithTickDuration(testTick)}
	return NewTestSim(append(base, opts...)...)
}

// memStore is an in-memory HighScoreStore with injectable failures.
type memStore struct {
	value   int
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) LoadHighScore(_ context.Context) (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.value, nil
}

func (m *memStore) SaveHighScore(_ context.Context, score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.value = score
	return nil
}

var errStoreDown = errors.New("store down")
