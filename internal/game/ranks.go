package game

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
)

// Rank is the size tier of a token. Valid ranks start at 1.
type Rank int

// Rank table validation errors.
var (
	ErrNoRanks         = errors.New("rank table is empty")
	ErrRadiusOrder     = errors.New("radius must strictly increase with rank")
	ErrDroppablePrefix = errors.New("droppable prefix must cover 1..K with 1 <= K < max rank")
	ErrTerminalBonus   = errors.New("terminal bonus must exceed the top merge score")
)

// RankInfo describes one row of the rank table.
type RankInfo struct {
	Rank      Rank
	Name      string
	Radius    float64
	Droppable bool
	Score     int // awarded when this rank is produced by a merge
	Colour    color.RGBA
}

// RankTable maps ranks to geometry and scoring. It is immutable once built.
type RankTable struct {
	entries       []RankInfo // index 0 is rank 1
	droppable     int
	terminalBonus int
}

var defaultRadii = []float64{14, 19, 25, 31, 38, 46, 55, 65, 76, 88, 101}

var defaultNames = []string{
	"cherry", "strawberry", "grape", "dekopon", "persimmon", "apple",
	"pear", "peach", "pineapple", "melon", "watermelon",
}

var defaultColours = []color.RGBA{
	{R: 220, G: 20, B: 60, A: 255},
	{R: 250, G: 80, B: 90, A: 255},
	{R: 140, G: 60, B: 200, A: 255},
	{R: 255, G: 170, B: 30, A: 255},
	{R: 245, G: 120, B: 20, A: 255},
	{R: 230, G: 40, B: 40, A: 255},
	{R: 240, G: 230, B: 120, A: 255},
	{R: 255, G: 190, B: 190, A: 255},
	{R: 250, G: 220, B: 40, A: 255},
	{R: 160, G: 230, B: 100, A: 255},
	{R: 30, G: 150, B: 60, A: 255},
}

// DefaultDroppable is the number of low ranks the player may spawn.
const DefaultDroppable = 5

// DefaultTerminalBonus is awarded when two top-rank tokens vanish.
const DefaultTerminalBonus = 66

// MergeScore is the triangular number for the rank a merge produces.
func MergeScore(result Rank) int {
	if result < 2 {
		return 0
	}
	r := int(result)
	return r * (r - 1) / 2
}

// NewRankTable builds a table from per-rank radii (index 0 is rank 1).
// Names and colours fall back to the defaults, cycling when there are more
// ranks than defaults.
func NewRankTable(radii []float64, droppable, terminalBonus int) (*RankTable, error) {
	if len(radii) == 0 {
		return nil, ErrNoRanks
	}
	if droppable < 1 || droppable >= len(radii) {
		return nil, fmt.Errorf("%w: got %d of %d", ErrDroppablePrefix, droppable, len(radii))
	}
	t := &RankTable{
		entries:       make([]RankInfo, len(radii)),
		droppable:     droppable,
		terminalBonus: terminalBonus,
	}
	for i, r := range radii {
		if r <= 0 || (i > 0 && r <= radii[i-1]) {
			return nil, fmt.Errorf("%w: rank %d radius %.1f", ErrRadiusOrder, i+1, r)
		}
		rank := Rank(i + 1)
		t.entries[i] = RankInfo{
			Rank:      rank,
			Name:      defaultNames[i%len(defaultNames)],
			Radius:    r,
			Droppable: i < droppable,
			Score:     MergeScore(rank),
			Colour:    defaultColours[i%len(defaultColours)],
		}
	}
	if terminalBonus <= t.entries[len(radii)-1].Score {
		return nil, fmt.Errorf("%w: bonus %d, top score %d", ErrTerminalBonus, terminalBonus, t.entries[len(radii)-1].Score)
	}
	return t, nil
}

// DefaultRankTable returns the standard 11-rank table.
func DefaultRankTable() *RankTable {
	t, err := NewRankTable(defaultRadii, DefaultDroppable, DefaultTerminalBonus)
	if err != nil {
		panic(err)
	}
	return t
}

// MaxRank is the highest rank; two of these vanish instead of merging.
func (t *RankTable) MaxRank() Rank { return Rank(len(t.entries)) }

// Droppable is the size K of the droppable prefix 1..K.
func (t *RankTable) Droppable() int { return t.droppable }

// TerminalBonus is the score for two max-rank tokens meeting.
func (t *RankTable) TerminalBonus() int { return t.terminalBonus }

// Valid reports whether r is inside the table.
func (t *RankTable) Valid(r Rank) bool {
	return r >= 1 && int(r) <= len(t.entries)
}

// Info returns the row for r. Out-of-range ranks return the zero value.
func (t *RankTable) Info(r Rank) RankInfo {
	if !t.Valid(r) {
		return RankInfo{}
	}
	return t.entries[r-1]
}

// Radius returns the radius of r, or 0 when r is out of range.
func (t *RankTable) Radius(r Rank) float64 {
	return t.Info(r).Radius
}

// Score returns the merge score for producing r.
func (t *RankTable) Score(r Rank) int {
	return t.Info(r).Score
}

// All returns a copy of every row, lowest rank first.
func (t *RankTable) All() []RankInfo {
	out := make([]RankInfo, len(t.entries))
	copy(out, t.entries)
	return out
}

// RandomDroppable draws a rank uniformly from the droppable prefix.
func (t *RankTable) RandomDroppable(rng *rand.Rand) Rank {
	return Rank(1 + rng.Intn(t.droppable)) // #nosec G404 -- game only
}
