// Package physics adapts the Chipmunk2D port to the game's Physics
// interface: circles for tokens, static segments for the container.
package physics

import (
	"math"
	"sort"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/jakecoffman/cp"
)

const (
	collisionToken cp.CollisionType = iota + 1
	collisionWall
)

// Options tunes the simulation.
type Options struct {
	Gravity    float64 // units/s², positive is down
	Friction   float64
	Elasticity float64
	Density    float64 // mass per unit area
	Substeps   int     // cp steps per Advance
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Gravity:    1400,
		Friction:   0.6,
		Elasticity: 0.15,
		Density:    0.01,
		Substeps:   2,
	}
}

var _ game.Physics = (*World)(nil)

type tokenBody struct {
	id     game.TokenID
	rank   game.Rank
	radius float64
	body   *cp.Body
	shape  *cp.Shape
}

// World is a cp space holding the container walls and token circles.
type World struct {
	space    *cp.Space
	ranks    *game.RankTable
	opts     Options
	bodies   map[game.TokenID]*tokenBody
	nextID   game.TokenID
	contacts []game.Contact
}

// NewWorld builds the container described by settings. Walls run well above
// the container top so nothing escapes sideways while falling in.
func NewWorld(ranks *game.RankTable, settings game.Settings, opts Options) *World {
	if opts.Substeps < 1 {
		opts.Substeps = 1
	}
	w := &World{
		space:  cp.NewSpace(),
		ranks:  ranks,
		opts:   opts,
		bodies: make(map[game.TokenID]*tokenBody),
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})

	half := math.Max(settings.Wall/2, 1)
	top := -settings.Height
	floorY := settings.Height + half
	leftX := settings.Wall - half
	rightX := settings.Width - settings.Wall + half
	for _, seg := range [][2]cp.Vector{
		{{X: leftX, Y: top}, {X: leftX, Y: floorY}},
		{{X: rightX, Y: top}, {X: rightX, Y: floorY}},
		{{X: leftX, Y: floorY}, {X: rightX, Y: floorY}},
	} {
		shape := cp.NewSegment(w.space.StaticBody, seg[0], seg[1], half)
		shape.SetFriction(opts.Friction)
		shape.SetElasticity(opts.Elasticity)
		shape.SetCollisionType(collisionWall)
		w.space.AddShape(shape)
	}

	handler := w.space.NewCollisionHandler(collisionToken, collisionToken)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Bodies()
		w.report(a, b)
		return true
	}
	return w
}

func (w *World) report(a, b *cp.Body) {
	ida, oka := a.UserData.(game.TokenID)
	idb, okb := b.UserData.(game.TokenID)
	if !oka || !okb {
		return
	}
	w.contacts = append(w.contacts, game.Contact{A: ida, B: idb})
}

// Advance steps the space by dt split into substeps.
func (w *World) Advance(dt time.Duration) {
	h := dt.Seconds() / float64(w.opts.Substeps)
	for i := 0; i < w.opts.Substeps; i++ {
		w.space.Step(h)
	}
}

// AddToken creates a circle for rank at (x, y).
func (w *World) AddToken(rank game.Rank, x, y float64) game.TokenID {
	w.nextID++
	r := w.ranks.Radius(rank)
	mass := w.opts.Density * math.Pi * r * r
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, r, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.UserData = w.nextID

	shape := w.space.AddShape(cp.NewCircle(body, r, cp.Vector{}))
	shape.SetFriction(w.opts.Friction)
	shape.SetElasticity(w.opts.Elasticity)
	shape.SetCollisionType(collisionToken)

	w.bodies[w.nextID] = &tokenBody{id: w.nextID, rank: rank, radius: r, body: body, shape: shape}
	return w.nextID
}

// RemoveTokens takes bodies out of the space. Call only between steps.
func (w *World) RemoveTokens(ids ...game.TokenID) {
	for _, id := range ids {
		tb, ok := w.bodies[id]
		if !ok {
			continue
		}
		w.space.RemoveShape(tb.shape)
		w.space.RemoveBody(tb.body)
		delete(w.bodies, id)
	}
}

// Token looks up a live token.
func (w *World) Token(id game.TokenID) (game.Token, bool) {
	tb, ok := w.bodies[id]
	if !ok {
		return game.Token{}, false
	}
	return tb.snapshot(), true
}

// Tokens lists live tokens by identity.
func (w *World) Tokens() []game.Token {
	out := make([]game.Token, 0, len(w.bodies))
	for _, tb := range w.bodies {
		out = append(out, tb.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DrainContacts hands over contact onsets collected during Advance.
func (w *World) DrainContacts() []game.Contact {
	out := w.contacts
	w.contacts = nil
	return out
}

// Clear removes every token.
func (w *World) Clear() {
	for id := range w.bodies {
		w.RemoveTokens(id)
	}
	w.contacts = nil
}

// Len is the number of live tokens.
func (w *World) Len() int { return len(w.bodies) }

func (tb *tokenBody) snapshot() game.Token {
	p := tb.body.Position()
	return game.Token{
		ID:     tb.id,
		Rank:   tb.rank,
		X:      p.X,
		Y:      p.Y,
		Radius: tb.radius,
		Angle:  tb.body.Angle(),
	}
}
