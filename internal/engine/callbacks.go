package engine

import "github.com/vovakirdan/mathflyer/internal/questions"

// GameOverSummary is delivered once per run when it ends.
type GameOverSummary struct {
	Score          int
	MathScore      int
	Streak         int
	HighestStreak  int
	TotalCorrect   int
	TotalIncorrect int
	Accuracy       float64 // Percent; 0 when nothing was answered
	Reason         string  // ground, ceiling or obstacle
}

// Callbacks connect the engine to the UI layer. Nil fields are skipped.
type Callbacks struct {
	OnScoreUpdate     func(score int)
	OnMathScoreUpdate func(mathScore, streak int)
	OnQuestionUpdate  func(q *questions.MathQuestion)
	OnGameOver        func(summary GameOverSummary)
	OnGameStart       func()
	OnError           func(err error)
}

func (c Callbacks) scoreUpdate(score int) {
	if c.OnScoreUpdate != nil {
		c.OnScoreUpdate(score)
	}
}

func (c Callbacks) mathScoreUpdate(points, streak int) {
	if c.OnMathScoreUpdate != nil {
		c.OnMathScoreUpdate(points, streak)
	}
}

func (c Callbacks) questionUpdate(q *questions.MathQuestion) {
	if c.OnQuestionUpdate != nil {
		c.OnQuestionUpdate(q)
	}
}

func (c Callbacks) gameOver(s GameOverSummary) {
	if c.OnGameOver != nil {
		c.OnGameOver(s)
	}
}

func (c Callbacks) gameStart() {
	if c.OnGameStart != nil {
		c.OnGameStart()
	}
}

func (c Callbacks) error(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}
