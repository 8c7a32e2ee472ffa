package tui

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// Particle motion constants, in playfield pixels and milliseconds.
const (
	particleMinSpeed = 0.08
	particleMaxSpeed = 0.35
	particleGravity  = 0.0006
	particleMinTTL   = 400.0
	particleMaxTTL   = 900.0
)

// Particle is one spark of an effect burst.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2 // Pixels per millisecond
	Color core.Color
	TTL   float64 // Remaining lifetime in milliseconds
}

// Particles is the terminal effect layer. It receives bursts from the engine
// and ages them with the frame deltas the UI feeds it.
type Particles struct {
	rng      *rand.Rand
	items    []Particle
	maxCount int
}

var _ scoring.EffectSpawner = (*Particles)(nil)

// NewParticles creates an empty particle system holding at most maxCount sparks.
// maxCount <= 0 means unlimited.
func NewParticles(seed int64, maxCount int) *Particles {
	return &Particles{
		rng:      rand.New(rand.NewSource(seed)),
		maxCount: maxCount,
	}
}

// SpawnEffect emits count sparks at (x, y). Sparks beyond the capacity are dropped.
func (p *Particles) SpawnEffect(x, y float64, colorHex string, count int) {
	color := core.ColorFromHex(colorHex)
	for i := 0; i < count; i++ {
		if p.maxCount > 0 && len(p.items) >= p.maxCount {
			return
		}
		angle := p.rng.Float64() * 2 * math.Pi
		speed := particleMinSpeed + p.rng.Float64()*(particleMaxSpeed-particleMinSpeed)
		p.items = append(p.items, Particle{
			Pos:   core.Vec2{X: x, Y: y},
			Vel:   core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Color: color,
			TTL:   particleMinTTL + p.rng.Float64()*(particleMaxTTL-particleMinTTL),
		})
	}
}

// Update moves every spark by deltaMs and drops the expired ones.
func (p *Particles) Update(deltaMs float64) {
	if deltaMs <= 0 {
		return
	}
	alive := p.items[:0]
	for _, pt := range p.items {
		pt.TTL -= deltaMs
		if pt.TTL <= 0 {
			continue
		}
		pt.Vel.Y += particleGravity * deltaMs
		pt.Pos.X += pt.Vel.X * deltaMs
		pt.Pos.Y += pt.Vel.Y * deltaMs
		alive = append(alive, pt)
	}
	clear(p.items[len(alive):])
	p.items = alive
}

// Len returns the number of live sparks.
func (p *Particles) Len() int {
	return len(p.items)
}

// Each calls fn for every live spark.
func (p *Particles) Each(fn func(Particle)) {
	for _, pt := range p.items {
		fn(pt)
	}
}

// Clear removes every spark.
func (p *Particles) Clear() {
	p.items = p.items[:0]
}
