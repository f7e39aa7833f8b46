// Package ui is the windowed frontend: it feeds input to a Session and draws
// its snapshot each frame.
package ui

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/numfmt"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// borderWidth is the pixel gap between the window edge and the container.
const borderWidth = 24

// aimSpeed is how far the arrow keys move the cursor per frame.
const aimSpeed = 5.0

// toastFrames is how long a status message stays up (~2s at 60 TPS).
const toastFrames = 120

var (
	bgColour       = color.RGBA{R: 18, G: 16, B: 24, A: 255}
	fieldColour    = color.RGBA{R: 250, G: 236, B: 200, A: 255}
	wallColour     = color.RGBA{R: 150, G: 110, B: 70, A: 255}
	lineColour     = color.RGBA{R: 200, G: 80, B: 70, A: 160}
	lineWarnColour = color.RGBA{R: 255, G: 40, B: 30, A: 255}
	guideColour    = color.RGBA{R: 120, G: 100, B: 80, A: 90}
	shadeColour    = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

// Game implements ebiten.Game around a Session.
type Game struct {
	session  *game.Session
	feed     *Feed
	reporter *game.RunReporter
	face     *text.GoXFace

	width  int
	height int
	offX   int
	offY   int

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	prevCursorX   int

	frame       int
	toast       string
	toastExpiry int
}

// New wires a frontend to s and subscribes its feed and reporter.
func New(s *game.Session) *Game {
	set := s.Settings()
	g := &Game{
		session:  s,
		feed:     NewFeed(s.Ranks()),
		reporter: game.NewRunReporter(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		offX:     borderWidth,
		offY:     borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.width = borderWidth + int(set.Width) + borderWidth + panelWidth
	g.height = borderWidth + int(set.Height) + borderWidth
	s.Subscribe(g.feed.Handle)
	s.Subscribe(g.reporter.Record)
	return g
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.frame++
	g.handleInput()
	g.session.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) handleInput() {
	cur := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		cur[k] = ebiten.IsKeyPressed(k)
		return cur[k] && !g.prevKeys[k]
	}

	mx, _ := ebiten.CursorPosition()
	if mx != g.prevCursorX {
		g.session.SetAim(float64(mx - g.offX))
		g.prevCursorX = mx
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.session.SetAim(g.session.Aim() - aimSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.session.SetAim(g.session.Aim() + aimSpeed)
	}

	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	click := mouseLeft && !g.prevMouseLeft
	g.prevMouseLeft = mouseLeft

	action := pressed(ebiten.KeySpace) || pressed(ebiten.KeyEnter) || click
	if action {
		switch g.session.State() {
		case game.StateReady:
			g.session.Start()
		case game.StatePlaying:
			g.session.DropAtAim()
		case game.StateGameOver:
			g.session.Restart()
		}
	}
	if pressed(ebiten.KeyP) {
		g.session.TogglePause()
	}
	if pressed(ebiten.KeyR) {
		g.session.Restart()
	}
	if pressed(ebiten.KeyEscape) {
		g.session.ReturnToMenu()
	}
	if pressed(ebiten.KeyC) && g.session.State() == game.StateGameOver {
		g.copySummary()
	}
	g.prevKeys = cur
}

// Summary is the shareable one-line result of the last game.
func (g *Game) Summary() string {
	rep := g.reporter.Report()
	top := "-"
	if ranks := g.session.Ranks(); ranks.Valid(rep.HighestRank) {
		top = ranks.Info(rep.HighestRank).Name
	}
	return fmt.Sprintf("Fruit Drop: %s points (best %s), %d merges, biggest fruit %s",
		numfmt.Score(g.session.Score()), numfmt.Score(g.session.HighScore()), rep.Merges, top)
}

func (g *Game) copySummary() {
	if err := clipboard.WriteAll(g.Summary()); err != nil {
		log.Printf("copy summary: %v", err)
		g.showToast("clipboard unavailable")
		return
	}
	g.showToast("summary copied")
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastExpiry = g.frame + toastFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColour)
	snap := g.session.Snapshot()

	g.drawContainer(screen, snap)
	g.drawGuide(screen, snap)
	g.drawTokens(screen, snap)
	g.drawHUD(screen, snap)
	g.feed.Draw(screen, g.width-panelWidth, 160, g.height)
	g.drawOverlay(screen, snap)
}

func (g *Game) drawContainer(screen *ebiten.Image, snap game.Snapshot) {
	set := g.session.Settings()
	ox, oy := float32(g.offX), float32(g.offY)
	w, h, wall := float32(set.Width), float32(set.Height), float32(set.Wall)

	vector.FillRect(screen, ox, oy, w, h, fieldColour, false)
	vector.FillRect(screen, ox, oy, wall, h, wallColour, false)
	vector.FillRect(screen, ox+w-wall, oy, wall, h, wallColour, false)
	vector.FillRect(screen, ox, oy+h, w, float32(borderWidth)/2, wallColour, false)

	// Dashed deadline; solid and blinking while the grace countdown runs.
	ly := oy + float32(set.DeadlineY)
	if snap.Warning {
		if (g.frame/10)%2 == 0 {
			vector.StrokeLine(screen, ox+wall, ly, ox+w-wall, ly, 2.0, lineWarnColour, false)
		}
		return
	}
	const dash, gap = 10, 6
	for x := ox + wall; x < ox+w-wall; x += dash + gap {
		end := min(x+dash, ox+w-wall)
		vector.StrokeLine(screen, x, ly, end, ly, 1.5, lineColour, false)
	}
}

func (g *Game) drawGuide(screen *ebiten.Image, snap game.Snapshot) {
	if snap.State != game.StatePlaying {
		return
	}
	set := g.session.Settings()
	x := float32(g.offX) + float32(snap.AimX)
	vector.StrokeLine(screen, x, float32(g.offY)+float32(set.SpawnY), x, float32(g.offY)+float32(set.Height), 1.0, guideColour, false)
	if !snap.CanDrop {
		return
	}
	info := g.session.Ranks().Info(snap.Current)
	ghost := info.Colour
	ghost.A = 170
	vector.FillCircle(screen, x, float32(g.offY)+float32(set.SpawnY), float32(info.Radius), ghost, true)
}

func (g *Game) drawTokens(screen *ebiten.Image, snap game.Snapshot) {
	ranks := g.session.Ranks()
	for _, t := range snap.Tokens {
		info := ranks.Info(t.Rank)
		cx := float32(g.offX) + float32(t.X)
		cy := float32(g.offY) + float32(t.Y)
		r := float32(t.Radius)
		vector.FillCircle(screen, cx, cy, r, info.Colour, true)
		vector.StrokeCircle(screen, cx, cy, r, 1.5, darken(info.Colour), true)
		// Spin marker so rolling reads on screen.
		ex := cx + float32(math.Cos(t.Angle))*r*0.6
		ey := cy + float32(math.Sin(t.Angle))*r*0.6
		vector.StrokeLine(screen, cx, cy, ex, ey, 2.0, color.RGBA{R: 255, G: 255, B: 255, A: 120}, true)
	}
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	px := float64(g.width - panelWidth + 12)
	g.drawText(screen, "SCORE", px, 12, 1, color.RGBA{R: 180, G: 170, B: 200, A: 255})
	g.drawText(screen, numfmt.Score(snap.Score), px, 28, 2, color.White)
	g.drawText(screen, "BEST "+numfmt.Score(snap.HighScore), px, 62, 1, color.RGBA{R: 250, G: 210, B: 60, A: 255})
	g.drawText(screen, fmt.Sprintf("MERGES %d  DROPS %d", snap.Merges, snap.Drops), px, 80, 1, color.RGBA{R: 180, G: 170, B: 200, A: 255})

	g.drawText(screen, "NEXT", px, 104, 1, color.RGBA{R: 180, G: 170, B: 200, A: 255})
	next := g.session.Ranks().Info(snap.Next)
	r := float32(min(next.Radius, 22))
	vector.FillCircle(screen, float32(px)+60, 130, r, next.Colour, true)
	vector.StrokeCircle(screen, float32(px)+60, 130, r, 1.5, darken(next.Colour), true)

	if snap.Warning {
		g.drawText(screen, "GAME OVER IN "+numfmt.Countdown(snap.GraceLeft), float64(g.offX+20), float64(g.offY+8), 1, lineWarnColour)
	}
	if g.toast != "" && g.frame < g.toastExpiry {
		ebitenutil.DebugPrintAt(screen, g.toast, g.offX+8, g.height-18)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap game.Snapshot) {
	var title string
	var lines []string
	switch {
	case snap.State == game.StateReady:
		title = "FRUIT DROP"
		lines = []string{"SPACE / click to start", "arrows or mouse to aim", "P pause  R restart  ESC menu"}
	case snap.Paused:
		title = "PAUSED"
		lines = []string{"P to resume"}
	case snap.State == game.StateGameOver:
		title = "GAME OVER"
		lines = []string{
			"score " + numfmt.Score(snap.Score),
			"SPACE / click to play again",
			"C copy summary  ESC menu",
		}
	default:
		return
	}

	set := g.session.Settings()
	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(set.Width), float32(set.Height), shadeColour, false)

	cx := float64(g.offX) + set.Width/2
	cy := float64(g.offY) + set.Height/3
	g.drawTextCentred(screen, title, cx, cy, 3, color.White)
	for i, l := range lines {
		g.drawTextCentred(screen, l, cx, cy+60+float64(i)*20, 1, color.RGBA{R: 230, G: 220, B: 240, A: 255})
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawTextCentred(screen *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, g.face, 0)
	g.drawText(screen, s, cx-w*scale/2, y, scale, clr)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
