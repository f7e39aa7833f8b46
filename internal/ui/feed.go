package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/numfmt"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth    = 240
	feedMaxLines  = 40
	feedLineH     = 14
	feedHighlight = 3 // newest entries drawn on a lit row
)

// FeedEntry is one line in the event feed.
type FeedEntry struct {
	Tick    int
	Colour  color.RGBA
	Message string
}

// Feed is a ring buffer of recent events rendered beside the container.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	ranks   *game.RankTable
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed(ranks *game.RankTable) *Feed {
	return &Feed{
		entries: make([]FeedEntry, feedMaxLines),
		ranks:   ranks,
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *Feed) Add(tick int, col color.RGBA, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Colour: col, Message: msg}
	f.head = (f.head + 1) % feedMaxLines
	if f.count < feedMaxLines {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxLines) % feedMaxLines
		out[i] = f.entries[idx]
	}
	return out
}

// Clear drops every entry.
func (f *Feed) Clear() {
	f.head = 0
	f.count = 0
}

var (
	feedGrey  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	feedRed   = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	feedGold  = color.RGBA{R: 250, G: 210, B: 60, A: 255}
	feedGreen = color.RGBA{R: 90, G: 200, B: 110, A: 255}
)

// Handle is a bus Handler.
func (f *Feed) Handle(ev game.Event) {
	switch ev.Kind {
	case game.EventMerge:
		info := f.ranks.Info(ev.Rank)
		f.Add(ev.Tick, info.Colour, fmt.Sprintf("%s +%s", info.Name, numfmt.Score(ev.Score)))
	case game.EventVanish:
		f.Add(ev.Tick, feedGold, fmt.Sprintf("VANISH +%s", numfmt.Score(ev.Score)))
	case game.EventDeadlineWarning:
		if ev.Warning {
			f.Add(ev.Tick, feedRed, "over the line!")
		} else {
			f.Add(ev.Tick, feedGreen, "line clear")
		}
	case game.EventGameOver:
		f.Add(ev.Tick, feedRed, fmt.Sprintf("GAME OVER %s", numfmt.Score(ev.Score)))
	case game.EventStateChanged:
		if ev.To == game.StatePlaying && ev.From != game.StatePlaying {
			f.Clear()
			f.Add(ev.Tick, feedGrey, "new game")
		}
	}
}

// Draw renders the feed panel from panelY down to panelH.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelY, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, float32(panelY), panelWidth, float32(panelH-panelY), color.RGBA{R: 14, G: 12, B: 18, A: 248}, false)
	vector.StrokeLine(screen, x, float32(panelY), x, float32(panelH), 1.0, color.RGBA{R: 70, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, x, float32(panelY), panelWidth, 16, color.RGBA{R: 30, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, panelY+1)

	entries := f.Recent()
	maxVisible := (panelH - panelY - 24) / feedLineH
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := panelY + 20
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, x+2, float32(y), panelWidth-4, feedLineH, color.RGBA{R: 36, G: 30, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, x+5, float32(y+4), 4, 6, e.Colour, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+14, y)
		y += feedLineH
	}
}
