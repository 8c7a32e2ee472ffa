package obstacle

import "math/rand"

// Layout holds the fixed vertical frame every obstacle is placed in.
type Layout struct {
	Width        float64
	CeilingY     float64
	GroundY      float64
	TopMargin    float64
	BottomMargin float64
}

// GapRange returns the allowed range for the top of a gap of the given height.
// When the margins leave no room, max equals min.
func (l Layout) GapRange(gapHeight float64) (lo, hi float64) {
	lo = l.CeilingY + l.TopMargin
	hi = l.GroundY - l.BottomMargin - gapHeight
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Place picks a random gap position for an obstacle spawned at x.
func (l Layout) Place(rng *rand.Rand, x, gapHeight float64) Geometry {
	lo, hi := l.GapRange(gapHeight)
	return Geometry{
		X:         x,
		Width:     l.Width,
		GapTop:    lo + rng.Float64()*(hi-lo),
		GapHeight: gapHeight,
		CeilingY:  l.CeilingY,
		GroundY:   l.GroundY,
	}
}
