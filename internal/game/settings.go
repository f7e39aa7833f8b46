package game

import (
	"fmt"
	"time"
)

// Settings is the container geometry and timing tuning.
type Settings struct {
	Width  float64 // outer width of the container, walls included
	Height float64 // floor position
	Wall   float64 // wall thickness

	SpawnY    float64 // height new tokens are dropped from
	DeadlineY float64 // tokens whose top is above this line are overflowing

	Grace        time.Duration // how long an overflow may persist
	DropCooldown time.Duration // minimum gap between drops
}

// DefaultSettings returns the standard container.
func DefaultSettings() Settings {
	return Settings{
		Width:        420,
		Height:       640,
		Wall:         12,
		SpawnY:       48,
		DeadlineY:    104,
		Grace:        3 * time.Second,
		DropCooldown: 500 * time.Millisecond,
	}
}

// Validate checks the geometry can hold every droppable rank.
func (s Settings) Validate(ranks *RankTable) error {
	if s.Width <= 0 || s.Height <= 0 || s.Wall < 0 {
		return fmt.Errorf("invalid container %.0fx%.0f wall %.0f", s.Width, s.Height, s.Wall)
	}
	widest := 2 * ranks.Radius(Rank(ranks.Droppable()))
	if s.Width-2*s.Wall <= widest {
		return fmt.Errorf("container interior %.0f too narrow for rank %d (diameter %.0f)", s.Width-2*s.Wall, ranks.Droppable(), widest)
	}
	if s.DeadlineY <= 0 || s.DeadlineY >= s.Height {
		return fmt.Errorf("deadline %.0f outside container height %.0f", s.DeadlineY, s.Height)
	}
	if s.SpawnY < 0 || s.SpawnY >= s.Height {
		return fmt.Errorf("spawn height %.0f outside container height %.0f", s.SpawnY, s.Height)
	}
	if s.Grace <= 0 {
		return fmt.Errorf("grace period must be positive, got %s", s.Grace)
	}
	if s.DropCooldown < 0 {
		return fmt.Errorf("drop cooldown must not be negative, got %s", s.DropCooldown)
	}
	return nil
}

// ClampX keeps a token of radius r inside the walls.
func (s Settings) ClampX(x, r float64) float64 {
	lo := s.Wall + r
	hi := s.Width - s.Wall - r
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
