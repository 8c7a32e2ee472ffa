package obstacle

import (
	"math/rand"

	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/questions"
)

// AnswerState tracks the one-shot "body entered an answer zone" transition.
type AnswerState uint8

const (
	AnswerPending AnswerState = iota
	AnswerResolved
)

// Lane names one half of the gap.
type Lane uint8

const (
	LaneUpper Lane = iota
	LaneLower
)

// String returns the lane name.
func (l Lane) String() string {
	if l == LaneUpper {
		return "upper"
	}
	return "lower"
}

// AnswerZone is one passable lane with its candidate answer.
type AnswerZone struct {
	Lane      Lane
	Bounds    core.Rect
	Value     int
	IsCorrect bool
}

// MathObstacle is an obstacle whose gap is split into two answer zones.
// Exactly one zone holds the question's correct answer.
type MathObstacle struct {
	Obstacle

	question    *questions.MathQuestion
	values      [2]int
	correctLane Lane
	answer      AnswerState
}

// Question returns the bound question, or nil for a plain obstacle.
func (m *MathObstacle) Question() *questions.MathQuestion {
	if m.question == nil {
		return nil
	}
	q := *m.question
	return &q
}

// QuestionID returns the bound question id, or "" when unbound.
func (m *MathObstacle) QuestionID() string {
	if m.question == nil {
		return ""
	}
	return m.question.ID
}

// Bind attaches q and lays out a correct and a distractor value on a coin flip.
// A nil q leaves the obstacle without answer zones.
func (m *MathObstacle) Bind(q *questions.MathQuestion, rng *rand.Rand) {
	if q == nil {
		m.question = nil
		m.values = [2]int{}
		return
	}
	cp := *q
	m.question = &cp

	wrong := Distractor(q.CorrectAnswer, rng)
	if rng.Intn(2) == 0 {
		m.correctLane = LaneUpper
		m.values = [2]int{q.CorrectAnswer, wrong}
	} else {
		m.correctLane = LaneLower
		m.values = [2]int{wrong, q.CorrectAnswer}
	}
}

// Zone returns the answer zone for a lane.
func (m *MathObstacle) Zone(l Lane) AnswerZone {
	g := m.geom
	half := g.GapHeight / 2
	y := g.GapTop
	if l == LaneLower {
		y += half
	}
	return AnswerZone{
		Lane:      l,
		Bounds:    core.NewRect(g.X, y, g.Width, half),
		Value:     m.values[l],
		IsCorrect: m.question != nil && l == m.correctLane,
	}
}

// Upper returns the upper answer zone.
func (m *MathObstacle) Upper() AnswerZone { return m.Zone(LaneUpper) }

// Lower returns the lower answer zone.
func (m *MathObstacle) Lower() AnswerZone { return m.Zone(LaneLower) }

// CheckAnswerSelection returns the zone the body overlaps, if any. When the body
// straddles both lanes the one with the larger vertical overlap wins, upper on a
// tie. The caller gates scoring on Answered; this method does not change state.
func (m *MathObstacle) CheckAnswerSelection(body core.Rect) (AnswerZone, bool) {
	if m.question == nil {
		return AnswerZone{}, false
	}
	up, low := m.Upper(), m.Lower()
	inUp := body.Intersects(up.Bounds)
	inLow := body.Intersects(low.Bounds)

	switch {
	case inUp && inLow:
		if body.VerticalOverlap(low.Bounds) > body.VerticalOverlap(up.Bounds) {
			return low, true
		}
		return up, true
	case inUp:
		return up, true
	case inLow:
		return low, true
	}
	return AnswerZone{}, false
}

// MarkAnswered flips the answer state and reports true only on the transition.
func (m *MathObstacle) MarkAnswered() bool {
	if m.answer == AnswerResolved {
		return false
	}
	m.answer = AnswerResolved
	return true
}

// Answered reports whether an answer zone has already been selected.
func (m *MathObstacle) Answered() bool {
	return m.answer == AnswerResolved
}

// NavigableArea returns the whole passable gap spanning both zones.
func (m *MathObstacle) NavigableArea() core.Rect {
	g := m.geom
	return core.NewRect(g.X, g.GapTop, g.Width, g.GapHeight)
}
