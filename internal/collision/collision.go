// Package collision provides stateless AABB tests for the body against terrain,
// obstacle geometry and answer zones. Nothing here mutates its inputs.
package collision

import (
	"github.com/vovakirdan/mathflyer/internal/core"
)

// Cause identifies what the body hit.
type Cause int

const (
	CauseNone Cause = iota
	CauseGround
	CauseCeiling
	CauseObstacle
)

// String returns a human-readable cause, used as the game-over reason.
func (c Cause) String() string {
	switch c {
	case CauseGround:
		return "ground"
	case CauseCeiling:
		return "ceiling"
	case CauseObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// Result is the outcome of EvaluateAll.
type Result struct {
	Cause Cause
	// Group is the index of the obstacle group that was hit, or -1.
	Group int
}

// Hit reports whether any collision occurred.
func (r Result) Hit() bool {
	return r.Cause != CauseNone
}

// BoxesIntersect reports whether two rectangles overlap with positive area.
// Rectangles that only touch along an edge do not intersect.
func BoxesIntersect(a, b core.Rect) bool {
	return a.Intersects(b)
}

// Detector holds the fixed thresholds of one playfield.
type Detector struct {
	GroundY  float64 // Body bottom below this line hits the ground
	CeilingY float64 // Body top above this line hits the ceiling
	Padding  float64 // Per-side body shrink applied before obstacle tests
}

// NewDetector creates a detector for the given terrain lines.
func NewDetector(groundY, ceilingY, padding float64) Detector {
	return Detector{GroundY: groundY, CeilingY: ceilingY, Padding: padding}
}

// PaddedBounds returns the forgiving hitbox used against obstacles.
func (d Detector) PaddedBounds(body core.Rect) core.Rect {
	return body.Inset(d.Padding)
}

// BodyHitsObstacle reports whether the padded body overlaps any rectangle.
func (d Detector) BodyHitsObstacle(body core.Rect, rects []core.Rect) bool {
	padded := d.PaddedBounds(body)
	for _, r := range rects {
		if BoxesIntersect(padded, r) {
			return true
		}
	}
	return false
}

// BodyHitsGround reports whether the body has sunk below the ground line.
func (d Detector) BodyHitsGround(body core.Rect) bool {
	return body.Bottom() > d.GroundY
}

// BodyHitsCeiling reports whether the body has risen above the ceiling line.
func (d Detector) BodyHitsCeiling(body core.Rect) bool {
	return body.Y < d.CeilingY
}

// BodyInZone reports whether the unpadded body overlaps an answer zone.
func BodyInZone(body, zone core.Rect) bool {
	return BoxesIntersect(body, zone)
}

// EvaluateAll checks terrain first, then every obstacle group in order.
// Ground wins over ceiling, and terrain wins over obstacles.
func (d Detector) EvaluateAll(body core.Rect, groups [][]core.Rect) Result {
	switch {
	case d.BodyHitsGround(body):
		return Result{Cause: CauseGround, Group: -1}
	case d.BodyHitsCeiling(body):
		return Result{Cause: CauseCeiling, Group: -1}
	}
	for i, g := range groups {
		if d.BodyHitsObstacle(body, g) {
			return Result{Cause: CauseObstacle, Group: i}
		}
	}
	return Result{Cause: CauseNone, Group: -1}
}
