// Package physics integrates the vertical motion of the controllable body.
package physics

import (
	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
)

// Body is the single controllable entity. Only X is fixed; Y and VelocityY
// change once per frame through Integrate.
type Body struct {
	Position  core.Vec2
	VelocityY float64
	Width     float64
	Height    float64

	start  core.Vec2
	params config.Physics
}

// NewBody creates a body at its configured start position.
func NewBody(b config.Body, p config.Physics) *Body {
	body := &Body{
		Width:  b.Width,
		Height: b.Height,
		start:  core.Vec2{X: b.StartX, Y: b.StartY},
		params: p,
	}
	body.Reset()
	return body
}

// Reset returns the body to its start position at rest.
func (b *Body) Reset() {
	b.Position = b.start
	b.VelocityY = 0
}

// ApplyJumpImpulse replaces the current vertical velocity with the jump impulse.
// Impulses never accumulate.
func (b *Body) ApplyJumpImpulse() {
	b.VelocityY = b.params.JumpImpulse
}

// Integrate advances the body by deltaMs, scaling the per-frame constants
// by deltaMs relative to the reference frame length.
func (b *Body) Integrate(deltaMs float64) {
	f := deltaMs / b.params.FrameReferenceMs

	b.VelocityY += b.params.Gravity * f
	b.Position.Y += b.VelocityY * f
	if b.VelocityY > b.params.MaxFallSpeed {
		b.VelocityY = b.params.MaxFallSpeed
	}
}

// Bounds returns the body's hitbox.
func (b *Body) Bounds() core.Rect {
	return core.NewRect(b.Position.X, b.Position.Y, b.Width, b.Height)
}

// LeadingX returns the x-coordinate of the body's front edge.
func (b *Body) LeadingX() float64 {
	return b.Position.X + b.Width
}
