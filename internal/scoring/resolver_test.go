package scoring

import (
	"strings"
	"testing"
	"time"
)

type effectCall struct {
	x, y  float64
	color string
	count int
}

type fakeEffects struct {
	calls []effectCall
}

func (f *fakeEffects) SpawnEffect(x, y float64, color string, count int) {
	f.calls = append(f.calls, effectCall{x, y, color, count})
}

type fakeScheduler struct {
	delays []time.Duration
	fns    []func()
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	s.fns = append(s.fns, fn)
}

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

func newTestResolver() (*Resolver, *fakeEffects, *fakeScheduler, *fakeClock) {
	fx := &fakeEffects{}
	sched := &fakeScheduler{}
	clock := &fakeClock{}
	r := NewResolver(NewSystem(), WithEffects(fx), WithScheduler(sched), WithClock(clock.Now))
	return r, fx, sched, clock
}

func TestValidateCorrectAnswer(t *testing.T) {
	r, fx, sched, clock := newTestResolver()
	clock.now = 2 * time.Second

	f := r.ValidateCorrectAnswer(100, 200)
	if f.Type != FeedbackCorrect || f.Points != 10 || f.Duration != time.Second {
		t.Errorf("feedback = %+v", f)
	}
	if f.CreatedAt != 2*time.Second {
		t.Errorf("CreatedAt = %v", f.CreatedAt)
	}
	if f.CorrectAnswer != nil {
		t.Error("correct feedback should not disclose an answer")
	}
	if len(fx.calls) != 1 || fx.calls[0].color != ColorCorrect || fx.calls[0].count != CorrectParticles {
		t.Errorf("effects = %+v", fx.calls)
	}
	if len(sched.fns) != 0 {
		t.Error("plain correct answer scheduled bursts")
	}
}

func TestStreakBonusFeedback(t *testing.T) {
	r, fx, sched, _ := newTestResolver()
	for i := 0; i < 4; i++ {
		if f := r.ValidateCorrectAnswer(0, 0); f.Type != FeedbackCorrect {
			t.Fatalf("answer %d type = %s", i+1, f.Type)
		}
	}
	fx.calls = nil

	f := r.ValidateCorrectAnswer(300, 250)
	if f.Type != FeedbackStreakBonus || f.Points != 60 || f.Duration != 2*time.Second {
		t.Errorf("bonus feedback = %+v", f)
	}
	if len(fx.calls) != 1 || fx.calls[0].color != ColorBonus {
		t.Errorf("bonus effects = %+v", fx.calls)
	}
	if len(sched.delays) != 2 || sched.delays[0] != 150*time.Millisecond || sched.delays[1] != 300*time.Millisecond {
		t.Fatalf("scheduled delays = %v", sched.delays)
	}

	for _, fn := range sched.fns {
		fn()
	}
	if len(fx.calls) != 5 {
		t.Errorf("after bursts effects = %d calls, expected 5", len(fx.calls))
	}

	if f := r.ValidateCorrectAnswer(0, 0); f.Type != FeedbackCorrect {
		t.Errorf("6th answer type = %s, expected correct", f.Type)
	}
}

func TestHandleIncorrectAnswer(t *testing.T) {
	r, fx, _, _ := newTestResolver()
	r.ValidateCorrectAnswer(0, 0)

	answer := 42
	f := r.HandleIncorrectAnswer(10, 20, &answer)
	if f.Type != FeedbackIncorrect || f.Points != -5 || f.Duration != 1500*time.Millisecond {
		t.Errorf("feedback = %+v", f)
	}
	if f.CorrectAnswer == nil || *f.CorrectAnswer != 42 {
		t.Errorf("CorrectAnswer = %v", f.CorrectAnswer)
	}
	if !strings.HasSuffix(f.Message, "(Correct: 42)") {
		t.Errorf("message %q does not disclose the answer", f.Message)
	}
	last := fx.calls[len(fx.calls)-1]
	if last.color != ColorIncorrect || last.count != IncorrectParticles {
		t.Errorf("incorrect effect = %+v", last)
	}

	g := r.HandleIncorrectAnswer(0, 0, nil)
	if g.CorrectAnswer != nil || strings.Contains(g.Message, "Correct:") {
		t.Errorf("feedback without answer = %+v", g)
	}
	if g.Points != -5 {
		t.Errorf("second deduction Points = %d, expected -5", g.Points)
	}
	if st := r.system.State(); st.Points != 0 {
		t.Errorf("points = %d, expected 0", st.Points)
	}
}

func TestFeedbackLifecycle(t *testing.T) {
	r, _, _, clock := newTestResolver()

	if r.Active() != nil {
		t.Fatal("new resolver has active feedback")
	}

	clock.now = time.Second
	r.ValidateCorrectAnswer(0, 0)

	r.UpdateFeedback(1999 * time.Millisecond)
	if r.Active() == nil {
		t.Fatal("feedback cleared before its duration elapsed")
	}
	r.UpdateFeedback(2 * time.Second)
	if r.Active() != nil {
		t.Error("feedback not cleared at its duration")
	}
}

func TestFeedbackSingleSlot(t *testing.T) {
	r, _, _, clock := newTestResolver()

	r.ValidateCorrectAnswer(0, 0)
	clock.now = 500 * time.Millisecond
	r.HandleIncorrectAnswer(0, 0, nil)

	active := r.Active()
	if active == nil || active.Type != FeedbackIncorrect || active.CreatedAt != 500*time.Millisecond {
		t.Fatalf("active = %+v", active)
	}

	// The replaced correct feedback would have expired at 1s; the new one lives to 2s.
	r.UpdateFeedback(time.Second)
	if r.Active() == nil {
		t.Error("replacement feedback cleared on the old deadline")
	}

	r.Reset()
	if r.Active() != nil {
		t.Error("Reset() kept feedback")
	}
}

func TestResolverWithoutCollaborators(t *testing.T) {
	r := NewResolver(NewSystem())
	for i := 0; i < 5; i++ {
		r.ValidateCorrectAnswer(0, 0)
	}
	if r.Active().Type != FeedbackStreakBonus {
		t.Error("bonus should work without effects or scheduler")
	}
}
