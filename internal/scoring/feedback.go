package scoring

import (
	"fmt"
	"time"
)

// FeedbackType classifies an answer outcome.
type FeedbackType string

const (
	FeedbackCorrect     FeedbackType = "correct"
	FeedbackIncorrect   FeedbackType = "incorrect"
	FeedbackStreakBonus FeedbackType = "streak_bonus"
)

// Display durations.
const (
	CorrectDuration     = 1000 * time.Millisecond
	IncorrectDuration   = 1500 * time.Millisecond
	StreakBonusDuration = 2000 * time.Millisecond
)

// Effect colors.
const (
	ColorCorrect   = "#22C55E"
	ColorIncorrect = "#EF4444"
	ColorBonus     = "#FFD700"
)

// Effect particle counts.
const (
	CorrectParticles   = 15
	IncorrectParticles = 10
	BonusParticles     = 30
	BurstParticles     = 20
)

// Feedback describes the most recent answer outcome for display.
type Feedback struct {
	Type    FeedbackType
	Points  int // Signed delta applied to the score
	Message string
	// Duration is how long the feedback stays active after CreatedAt.
	Duration  time.Duration
	CreatedAt time.Duration
	// CorrectAnswer is set only for incorrect feedback when the answer is known.
	CorrectAnswer *int
}

// Expired reports whether the feedback has been shown long enough at now.
func (f Feedback) Expired(now time.Duration) bool {
	return now-f.CreatedAt >= f.Duration
}

func correctFeedback(awarded, streak int) Feedback {
	if streak == StreakBonusAt {
		return Feedback{
			Type:     FeedbackStreakBonus,
			Points:   awarded,
			Message:  fmt.Sprintf("%d in a row! +%d", streak, awarded),
			Duration: StreakBonusDuration,
		}
	}
	return Feedback{
		Type:     FeedbackCorrect,
		Points:   awarded,
		Message:  fmt.Sprintf("Correct! +%d", awarded),
		Duration: CorrectDuration,
	}
}

func incorrectFeedback(deducted int, correctAnswer *int) Feedback {
	f := Feedback{
		Type:     FeedbackIncorrect,
		Points:   -deducted,
		Message:  fmt.Sprintf("Wrong! -%d", deducted),
		Duration: IncorrectDuration,
	}
	if correctAnswer != nil {
		v := *correctAnswer
		f.CorrectAnswer = &v
		f.Message += fmt.Sprintf(" (Correct: %d)", v)
	}
	return f
}
