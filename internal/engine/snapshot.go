package engine

import (
	"slices"
	"time"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/obstacle"
	"github.com/vovakirdan/mathflyer/internal/questions"
	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// Phase is the run state machine: Ready -> Playing -> GameOver.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// BodyView is the read-only body state.
type BodyView struct {
	Bounds    core.Rect
	VelocityY float64
}

// ZoneView is the read-only state of one answer zone.
type ZoneView struct {
	Bounds    core.Rect
	Value     int
	IsCorrect bool
}

// ObstacleView is the read-only state of one obstacle.
type ObstacleView struct {
	ID          obstacle.ID
	X, Width    float64
	Top, Bottom core.Rect
	Upper       ZoneView
	Lower       ZoneView
	QuestionID  string
	Passed      bool
	Answered    bool
}

// HasQuestion reports whether the obstacle carries answer zones.
func (o ObstacleView) HasQuestion() bool {
	return o.QuestionID != ""
}

// GameState is a snapshot of everything the UI may draw. It shares no memory
// with the engine.
type GameState struct {
	Phase          Phase
	Playfield      config.Playfield
	Body           BodyView
	Obstacles      []ObstacleView
	Score          int
	Math           scoring.State
	Question       *questions.MathQuestion
	Feedback       *scoring.Feedback
	GameOverReason string
	Elapsed        time.Duration
	NextObstacleX  float64
	Scrolled       float64
}

func (s GameState) clone() GameState {
	s.Obstacles = slices.Clone(s.Obstacles)
	if s.Question != nil {
		q := *s.Question
		s.Question = &q
	}
	if s.Feedback != nil {
		f := *s.Feedback
		if f.CorrectAnswer != nil {
			v := *f.CorrectAnswer
			f.CorrectAnswer = &v
		}
		s.Feedback = &f
	}
	return s
}

func viewOf(m *obstacle.MathObstacle) ObstacleView {
	up, low := m.Upper(), m.Lower()
	return ObstacleView{
		ID:         m.ID(),
		X:          m.X(),
		Width:      m.Width(),
		Top:        m.TopRect(),
		Bottom:     m.BottomRect(),
		Upper:      ZoneView{Bounds: up.Bounds, Value: up.Value, IsCorrect: up.IsCorrect},
		Lower:      ZoneView{Bounds: low.Bounds, Value: low.Value, IsCorrect: low.IsCorrect},
		QuestionID: m.QuestionID(),
		Passed:     m.Passed(),
		Answered:   m.Answered(),
	}
}
