// Package autopilot steers the body through the engine the way a player would,
// using only snapshots and the jump action. It drives the headless simulate
// command and end-to-end tests.
package autopilot

import (
	"math/rand"

	"github.com/vovakirdan/mathflyer/internal/engine"
	"github.com/vovakirdan/mathflyer/internal/obstacle"
)

// DefaultDeadband is how far below its target the body may sink before the
// pilot flaps. A jump rises roughly twice this far, so the body oscillates
// around the target.
const DefaultDeadband = 30

// Pilot decides when to flap. Accuracy is the chance it aims for the correct
// lane of each obstacle.
type Pilot struct {
	rng      *rand.Rand
	accuracy float64
	deadband float64
	aim      map[obstacle.ID]bool // true = aim for the correct lane
}

// New creates a pilot.
func New(accuracy float64, seed int64) *Pilot {
	return &Pilot{
		rng:      rand.New(rand.NewSource(seed)),
		accuracy: accuracy,
		deadband: DefaultDeadband,
		aim:      make(map[obstacle.ID]bool),
	}
}

// Target returns the y-coordinate the body's center should hold.
func (p *Pilot) Target(s engine.GameState) float64 {
	next, ok := nextObstacle(s)
	if !ok {
		return (s.Playfield.CeilingY + s.Playfield.GroundY()) / 2
	}
	if !next.HasQuestion() {
		return (next.Top.Bottom() + next.Bottom.Y) / 2
	}

	correct, seen := p.aim[next.ID]
	if !seen {
		correct = p.rng.Float64() < p.accuracy
		p.aim[next.ID] = correct
	}
	zone := next.Upper
	if next.Lower.IsCorrect == correct {
		zone = next.Lower
	}
	return zone.Bounds.Center().Y
}

// Decide reports whether the body should flap this frame.
func (p *Pilot) Decide(s engine.GameState) bool {
	center := s.Body.Bounds.Center().Y
	return center > p.Target(s)+p.deadband && s.Body.VelocityY >= 0
}

// Forget drops lane choices for obstacles that are gone.
func (p *Pilot) Forget(s engine.GameState) {
	live := make(map[obstacle.ID]struct{}, len(s.Obstacles))
	for _, o := range s.Obstacles {
		live[o.ID] = struct{}{}
	}
	for id := range p.aim {
		if _, ok := live[id]; !ok {
			delete(p.aim, id)
		}
	}
}

// nextObstacle returns the leftmost obstacle the body has not fully cleared.
func nextObstacle(s engine.GameState) (engine.ObstacleView, bool) {
	var best engine.ObstacleView
	found := false
	for _, o := range s.Obstacles {
		if o.X+o.Width <= s.Body.Bounds.X {
			continue
		}
		if !found || o.X < best.X {
			best, found = o, true
		}
	}
	return best, found
}

// Run starts e if needed and flies it for up to frames steps of deltaMs.
// It returns the number of frames simulated.
func Run(e *engine.Engine, p *Pilot, frames int, deltaMs float64) (int, error) {
	if e.Phase() == engine.PhaseReady {
		if err := e.Start(); err != nil {
			return 0, err
		}
	}
	n := 0
	for ; n < frames && e.IsPlaying(); n++ {
		s := e.GameState()
		if p.Decide(s) {
			e.Jump()
		}
		e.Update(deltaMs)
		if n%64 == 0 {
			p.Forget(s)
		}
	}
	return n, nil
}
