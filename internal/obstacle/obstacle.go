// Package obstacle models the scrolling gates the body flies through and the
// answer zones a math obstacle carries inside its gap.
package obstacle

import (
	"github.com/vovakirdan/mathflyer/internal/core"
)

// ID identifies one activation of an obstacle. IDs are never reused, even when
// the underlying object comes back from the pool.
type ID uint64

// PassState tracks the one-shot "body has flown past" transition.
type PassState uint8

const (
	PassPending PassState = iota
	PassComplete
)

// Geometry places an obstacle on the playfield.
type Geometry struct {
	X         float64 // Left edge
	Width     float64
	GapTop    float64 // Top of the passable gap
	GapHeight float64
	CeilingY  float64 // Top of the upper solid section
	GroundY   float64 // Bottom of the lower solid section
}

// GapBottom returns the y-coordinate where the lower solid section starts.
func (g Geometry) GapBottom() float64 {
	return g.GapTop + g.GapHeight
}

// Obstacle is a pair of solid sections with a gap between them.
type Obstacle struct {
	id   ID
	geom Geometry
	pass PassState
}

// ID returns the activation identifier.
func (o *Obstacle) ID() ID {
	return o.id
}

// X returns the left edge.
func (o *Obstacle) X() float64 {
	return o.geom.X
}

// Width returns the fixed obstacle width.
func (o *Obstacle) Width() float64 {
	return o.geom.Width
}

// Right returns the trailing edge, x + width.
func (o *Obstacle) Right() float64 {
	return o.geom.X + o.geom.Width
}

// Geometry returns a copy of the placement.
func (o *Obstacle) Geometry() Geometry {
	return o.geom
}

// TopRect returns the solid section above the gap.
func (o *Obstacle) TopRect() core.Rect {
	g := o.geom
	return core.NewRect(g.X, g.CeilingY, g.Width, g.GapTop-g.CeilingY)
}

// BottomRect returns the solid section below the gap.
func (o *Obstacle) BottomRect() core.Rect {
	g := o.geom
	return core.NewRect(g.X, g.GapBottom(), g.Width, g.GroundY-g.GapBottom())
}

// Rects returns both solid sections for collision tests.
func (o *Obstacle) Rects() []core.Rect {
	return []core.Rect{o.TopRect(), o.BottomRect()}
}

// Advance moves the obstacle left by dx.
func (o *Obstacle) Advance(dx float64) {
	o.geom.X -= dx
}

// CheckPassed flips the pass state the first time leadingX is strictly past the
// trailing edge and reports true only for that call.
func (o *Obstacle) CheckPassed(leadingX float64) bool {
	if o.pass == PassComplete {
		return false
	}
	if leadingX > o.Right() {
		o.pass = PassComplete
		return true
	}
	return false
}

// Passed reports whether the pass transition has happened.
func (o *Obstacle) Passed() bool {
	return o.pass == PassComplete
}

// Offscreen reports whether the obstacle has fully scrolled past the left edge.
func (o *Obstacle) Offscreen() bool {
	return o.Right() < 0
}
