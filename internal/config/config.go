// Package config loads tuning from FRUIT_DROP_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/physics"
	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration.
type Config struct {
	Width     float64 `env:"FRUIT_DROP_WIDTH"      envDefault:"420"`
	Height    float64 `env:"FRUIT_DROP_HEIGHT"     envDefault:"640"`
	Wall      float64 `env:"FRUIT_DROP_WALL"       envDefault:"12"`
	SpawnY    float64 `env:"FRUIT_DROP_SPAWN_Y"    envDefault:"48"`
	DeadlineY float64 `env:"FRUIT_DROP_DEADLINE_Y" envDefault:"104"`

	Grace        time.Duration `env:"FRUIT_DROP_GRACE"         envDefault:"3s"`
	DropCooldown time.Duration `env:"FRUIT_DROP_DROP_COOLDOWN" envDefault:"500ms"`

	Gravity    float64 `env:"FRUIT_DROP_GRAVITY"    envDefault:"1400"`
	Friction   float64 `env:"FRUIT_DROP_FRICTION"   envDefault:"0.6"`
	Elasticity float64 `env:"FRUIT_DROP_ELASTICITY" envDefault:"0.15"`
	Substeps   int     `env:"FRUIT_DROP_SUBSTEPS"   envDefault:"2"`

	// Seed 0 seeds from the clock.
	Seed int64 `env:"FRUIT_DROP_SEED" envDefault:"0"`

	// DBPath is the SQLite file holding the high score. Empty disables it.
	DBPath string `env:"FRUIT_DROP_DB_PATH" envDefault:"fruit-drop.db"`

	Sound bool    `env:"FRUIT_DROP_SOUND" envDefault:"true"`
	Scale float64 `env:"FRUIT_DROP_SCALE" envDefault:"1"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the game and physics cannot recover from.
func (c Config) Validate() error {
	if err := c.Settings().Validate(game.DefaultRankTable()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("invalid config: gravity must be positive, got %g", c.Gravity)
	}
	if c.Substeps < 1 {
		return fmt.Errorf("invalid config: substeps must be at least 1, got %d", c.Substeps)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid config: scale must be positive, got %g", c.Scale)
	}
	return nil
}

// Settings converts to the game's container tuning.
func (c Config) Settings() game.Settings {
	return game.Settings{
		Width:        c.Width,
		Height:       c.Height,
		Wall:         c.Wall,
		SpawnY:       c.SpawnY,
		DeadlineY:    c.DeadlineY,
		Grace:        c.Grace,
		DropCooldown: c.DropCooldown,
	}
}

// Physics converts to the simulation tuning.
func (c Config) Physics() physics.Options {
	opts := physics.DefaultOptions()
	opts.Gravity = c.Gravity
	opts.Friction = c.Friction
	opts.Elasticity = c.Elasticity
	opts.Substeps = c.Substeps
	return opts
}

// ResolveSeed returns Seed, or now's nanoseconds when Seed is 0.
func (c Config) ResolveSeed(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
