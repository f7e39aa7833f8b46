package game

import (
	"fmt"
	"math/rand"
)

// Strategy picks where an automated player drops.
type Strategy int

const (
	StrategyRandom Strategy = iota // uniform x across the interior
	StrategyCenter                 // always the middle
	StrategyMatch                  // above the highest token of the same rank, else random
)

func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyCenter:
		return "center"
	case StrategyMatch:
		return "match"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{StrategyRandom, StrategyCenter, StrategyMatch} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (supported: random, center, match)", name)
}

// Autoplayer drops tokens for headless runs and the attract screen.
type Autoplayer struct {
	strategy Strategy
	rng      *rand.Rand
}

// NewAutoplayer creates a bot with its own seeded source so its choices do
// not disturb the session's rank queue.
func NewAutoplayer(strategy Strategy, seed int64) *Autoplayer {
	return &Autoplayer{
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// Choose returns the drop x for the session's current token.
func (a *Autoplayer) Choose(s *Session) float64 {
	set := s.Settings()
	r := s.Ranks().Radius(s.Current())
	lo := set.Wall + r
	hi := set.Width - set.Wall - r
	random := lo + a.rng.Float64()*(hi-lo)

	switch a.strategy {
	case StrategyCenter:
		return set.Width / 2
	case StrategyMatch:
		best, found := Token{}, false
		for _, t := range s.Physics().Tokens() {
			if t.Rank != s.Current() {
				continue
			}
			if !found || t.Top() < best.Top() {
				best, found = t, true
			}
		}
		if found {
			return set.ClampX(best.X, r)
		}
		return random
	default:
		return random
	}
}

// Play drops if the session will accept it and reports whether it did.
func (a *Autoplayer) Play(s *Session) bool {
	if !s.CanDrop() {
		return false
	}
	return s.RequestDrop(a.Choose(s))
}
