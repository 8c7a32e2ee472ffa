package autopilot

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/engine"
	"github.com/vovakirdan/mathflyer/internal/questions"
)

const frameMs = 16.67

type nopSurface struct{}

func (nopSurface) Draw(engine.GameState) error { return nil }

func newEngine(t *testing.T, seed int64) *engine.Engine {
	t.Helper()
	qs, err := questions.EmbeddedSource{}.Load()
	if err != nil {
		t.Fatal(err)
	}
	pool, err := questions.NewPool(qs, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.New(config.DefaultConfig(), pool, engine.WithSeed(seed))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(nopSurface{}, engine.Callbacks{}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestDecide(t *testing.T) {
	pf := config.DefaultConfig().Playfield
	mid := (pf.CeilingY + pf.GroundY()) / 2 // 275

	tests := []struct {
		name     string
		centerY  float64
		velocity float64
		want     bool
	}{
		{"on target", mid, 2, false},
		{"inside deadband", mid + 25, 2, false},
		{"below deadband falling", mid + 40, 2, true},
		{"below deadband at apex", mid + 40, 0, true},
		{"below deadband rising", mid + 40, -3, false},
		{"above target", mid - 50, 5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := New(1, 1)
			s := engine.GameState{
				Playfield: pf,
				Body: engine.BodyView{
					Bounds:    core.NewRect(150, tc.centerY-12, 34, 24),
					VelocityY: tc.velocity,
				},
			}
			if got := p.Decide(s); got != tc.want {
				t.Errorf("Decide() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestTargetPicksLaneByAccuracy(t *testing.T) {
	upper := engine.ZoneView{Bounds: core.NewRect(300, 100, 80, 120), Value: 7, IsCorrect: false}
	lower := engine.ZoneView{Bounds: core.NewRect(300, 220, 80, 120), Value: 8, IsCorrect: true}
	s := engine.GameState{
		Playfield: config.DefaultConfig().Playfield,
		Body:      engine.BodyView{Bounds: core.NewRect(150, 260, 34, 24)},
		Obstacles: []engine.ObstacleView{
			{ID: 1, X: 300, Width: 80, Upper: upper, Lower: lower, QuestionID: "q"},
			{ID: 2, X: 750, Width: 80, QuestionID: "r"},
		},
	}

	if got := New(1, 1).Target(s); got != 280 {
		t.Errorf("accurate pilot target = %v, expected lower lane center 280", got)
	}
	if got := New(0, 1).Target(s); got != 160 {
		t.Errorf("always-wrong pilot target = %v, expected upper lane center 160", got)
	}

	// The choice sticks for the same obstacle.
	p := New(0.5, 3)
	first := p.Target(s)
	for i := 0; i < 20; i++ {
		if p.Target(s) != first {
			t.Fatal("lane choice changed between frames")
		}
	}

	// A cleared obstacle is skipped.
	s.Body.Bounds.X = 400
	s.Obstacles[1].Top = core.NewRect(750, 0, 80, 100)
	s.Obstacles[1].Bottom = core.NewRect(750, 340, 80, 210)
	s.Obstacles[1].QuestionID = ""
	if got := New(1, 1).Target(s); got != 220 {
		t.Errorf("target past first obstacle = %v, expected gap center 220", got)
	}
}

func TestAccuratePilotAnswersEverything(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		e := newEngine(t, seed)
		n, err := Run(e, New(1, seed), 3000, frameMs)
		if err != nil {
			t.Fatal(err)
		}
		sum := e.Summary()
		if n != 3000 || !e.IsPlaying() {
			t.Fatalf("seed %d: run ended after %d frames (%s)", seed, n, sum.Reason)
		}
		if sum.TotalIncorrect != 0 || sum.TotalCorrect < 10 {
			t.Errorf("seed %d: summary %+v", seed, sum)
		}
		if sum.HighestStreak != sum.TotalCorrect || sum.Accuracy != 100 {
			t.Errorf("seed %d: streak %d accuracy %v", seed, sum.HighestStreak, sum.Accuracy)
		}
		if sum.Score < sum.TotalCorrect-1 {
			t.Errorf("seed %d: passed %d obstacles but answered %d", seed, sum.Score, sum.TotalCorrect)
		}
	}
}

func TestWrongPilotNeverScores(t *testing.T) {
	e := newEngine(t, 4)
	if _, err := Run(e, New(0, 4), 2000, frameMs); err != nil {
		t.Fatal(err)
	}
	sum := e.Summary()
	if !e.IsPlaying() {
		t.Fatalf("run ended: %s", sum.Reason)
	}
	if sum.MathScore != 0 || sum.TotalCorrect != 0 || sum.TotalIncorrect == 0 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() engine.GameOverSummary {
		e := newEngine(t, 99)
		if _, err := Run(e, New(0.7, 99), 2500, frameMs); err != nil {
			t.Fatal(err)
		}
		return e.Summary()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("summaries differ:\n%+v\n%+v", a, b)
	}
}
