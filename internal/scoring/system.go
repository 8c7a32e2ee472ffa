// Package scoring keeps point and streak bookkeeping and turns answer outcomes
// into timed feedback and visual effects.
package scoring

// Fixed scoring rules.
const (
	PointsPerCorrect  = 10
	IncorrectPenalty  = 5
	StreakBonusAt     = 5 // The bonus fires only when the streak equals this value
	StreakBonusPoints = 50
)

// State is a snapshot of the scoring counters.
type State struct {
	Points         int
	Streak         int
	HighestStreak  int
	TotalCorrect   int
	TotalIncorrect int
}

// Accuracy returns the percentage of correct answers, or 0 when nothing was answered.
func (s State) Accuracy() float64 {
	total := s.TotalCorrect + s.TotalIncorrect
	if total == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(total) * 100
}

// System mutates State only through the two resolution operations.
type System struct {
	state State
}

// NewSystem creates a zeroed scoring system.
func NewSystem() *System {
	return &System{}
}

// ProcessCorrectAnswer records a correct answer and returns the points awarded.
func (s *System) ProcessCorrectAnswer() int {
	awarded := PointsPerCorrect
	s.state.Streak++
	s.state.TotalCorrect++
	s.state.HighestStreak = max(s.state.HighestStreak, s.state.Streak)
	if s.state.Streak == StreakBonusAt {
		awarded += StreakBonusPoints
	}
	s.state.Points += awarded
	return awarded
}

// ProcessIncorrectAnswer records a wrong answer and returns the points actually
// deducted. Points never go below zero.
func (s *System) ProcessIncorrectAnswer() int {
	deducted := min(IncorrectPenalty, s.state.Points)
	s.state.Points -= deducted
	s.state.Streak = 0
	s.state.TotalIncorrect++
	return deducted
}

// State returns a copy of the counters.
func (s *System) State() State {
	return s.state
}

// Reset zeroes every counter, including the highest streak.
func (s *System) Reset() {
	s.state = State{}
}
