// Package term runs the game in a terminal.
package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/numfmt"
	"github.com/gdamore/tcell/v2"
)

const (
	sidebarWidth = 26
	tickRate     = 60
)

// App drives a Session from a tcell screen.
type App struct {
	session *game.Session
	screen  tcell.Screen

	cols, rows int // board area in cells
	lastEvent  string
}

// New creates an App for s. The screen is opened by Run.
func New(s *game.Session) *App {
	a := &App{session: s}
	s.Subscribe(a.record)
	return a
}

func (a *App) record(ev game.Event) {
	switch ev.Kind {
	case game.EventMerge:
		a.lastEvent = fmt.Sprintf("%s +%d", a.session.Ranks().Info(ev.Rank).Name, ev.Score)
	case game.EventVanish:
		a.lastEvent = fmt.Sprintf("VANISH +%d", ev.Score)
	case game.EventGameOver:
		a.lastEvent = "game over"
	}
}

// Run owns the terminal until ctx ends or the player quits. Only the loop
// goroutine touches the session; the poller just forwards tcell events.
func (a *App) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	a.screen = screen
	a.resize()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	dt := time.Second / tickRate
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.handle(ev) {
				return nil
			}
		case <-ticker.C:
			a.session.Update(dt)
			a.draw()
		}
	}
}

func (a *App) resize() {
	w, h := a.screen.Size()
	a.cols = max(10, w-sidebarWidth-2)
	a.rows = max(10, h-2)
	// Keep the container's aspect with cells roughly twice as tall as wide.
	set := a.session.Settings()
	want := int(float64(a.rows) * 2 * set.Width / set.Height)
	if want < a.cols {
		a.cols = want
	}
}

// handle applies one input event and reports whether to quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventKey:
		step := a.session.Settings().Width / float64(max(a.cols, 1))
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyEscape:
			a.session.ReturnToMenu()
		case tcell.KeyLeft:
			a.session.SetAim(a.session.Aim() - step)
		case tcell.KeyRight:
			a.session.SetAim(a.session.Aim() + step)
		case tcell.KeyEnter:
			a.action()
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				a.action()
			case 'h':
				a.session.SetAim(a.session.Aim() - step)
			case 'l':
				a.session.SetAim(a.session.Aim() + step)
			case 'p':
				a.session.TogglePause()
			case 'r':
				a.session.Restart()
			case 'q':
				return true
			}
		}
	}
	return false
}

func (a *App) action() {
	switch a.session.State() {
	case game.StateReady:
		a.session.Start()
	case game.StatePlaying:
		a.session.DropAtAim()
	case game.StateGameOver:
		a.session.Restart()
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (a *App) draw() {
	s := a.screen
	s.Clear()
	snap := a.session.Snapshot()
	set := a.session.Settings()
	ranks := a.session.Ranks()
	grid := Rasterize(snap, set, a.cols, a.rows)

	base := tcell.StyleDefault
	wall := base.Background(tcell.NewRGBColor(150, 110, 70))
	dead := base.Foreground(tcell.ColorRed)
	if snap.Warning {
		dead = dead.Bold(true).Reverse(true)
	}
	guide := base.Foreground(tcell.ColorGray)

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			x, y := c+1, r+1
			switch k := grid.At(c, r); {
			case k > 0:
				s.SetContent(x, y, '█', nil, base.Foreground(rgb(ranks.Info(game.Rank(k)).Colour)))
			case k == cellWall:
				s.SetContent(x, y, ' ', nil, wall)
			case k == cellDeadline:
				s.SetContent(x, y, '-', nil, dead)
			case k == cellGuide:
				s.SetContent(x, y, '·', nil, guide)
			}
		}
	}

	sx := a.cols + 3
	a.text(sx, 1, base.Bold(true), "FRUIT DROP")
	a.text(sx, 3, base, "score "+numfmt.Score(snap.Score))
	a.text(sx, 4, base.Foreground(tcell.ColorYellow), "best  "+numfmt.Score(snap.HighScore))
	a.text(sx, 5, base, fmt.Sprintf("merges %d", snap.Merges))
	cur := ranks.Info(snap.Current)
	next := ranks.Info(snap.Next)
	a.text(sx, 7, base.Foreground(rgb(cur.Colour)), "now  "+cur.Name)
	a.text(sx, 8, base.Foreground(rgb(next.Colour)), "next "+next.Name)
	if snap.Warning {
		a.text(sx, 10, dead, "over in "+numfmt.Countdown(snap.GraceLeft))
	}
	a.text(sx, 12, base, a.lastEvent)

	switch {
	case snap.State == game.StateReady:
		a.text(sx, 14, base.Bold(true), "SPACE to start")
	case snap.Paused:
		a.text(sx, 14, base.Bold(true), "PAUSED (p)")
	case snap.State == game.StateGameOver:
		a.text(sx, 14, dead, "GAME OVER")
		a.text(sx, 15, base, "SPACE to retry")
	}
	a.text(sx, 17, guide, "←/→ h/l aim  space drop")
	a.text(sx, 18, guide, "p pause r restart q quit")
	s.Show()
}

func (a *App) text(x, y int, style tcell.Style, str string) {
	for _, r := range str {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
