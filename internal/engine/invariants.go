package engine

import (
	"fmt"
)

// violation reports a broken invariant. In debug builds it panics; otherwise
// the caller clamps to the nearest legal value.
func (e *Engine) violation(format string, args ...any) {
	err := fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
	if e.debug {
		panic(err)
	}
	e.logger.Error("invariant violation", "err", err)
}

// checkSpacing keeps the drawn spacing inside [base*(1-j), base*(1+j)].
func (e *Engine) checkSpacing(spacing float64) float64 {
	o := e.cfg.Obstacles
	lo := o.BaseSpacing * (1 - o.SpacingJitter)
	hi := o.BaseSpacing * (1 + o.SpacingJitter)
	const eps = 1e-9
	if spacing <= 0 || spacing < lo-eps || spacing > hi+eps {
		e.violation("spawn spacing %.2f outside [%.2f, %.2f]", spacing, lo, hi)
		return o.BaseSpacing
	}
	return spacing
}

// checkGap keeps the gap tall enough for the body and never below the configured minimum.
func (e *Engine) checkGap(gap float64) float64 {
	floor := max(e.cfg.Obstacles.MinGapHeight, e.cfg.Body.Height+1)
	if gap < floor {
		e.violation("gap height %.2f below minimum %.2f", gap, floor)
		return floor
	}
	return gap
}

// checkNavigable asserts that a freshly placed gap is a non-empty area the body fits through.
func (e *Engine) checkNavigable(height, width float64) {
	if height <= e.cfg.Body.Height || width <= 0 {
		e.violation("navigable area %.2fx%.2f cannot fit the body", width, height)
	}
}
