package scoring

import "time"

// EffectSpawner is the fire-and-forget particle capability.
type EffectSpawner interface {
	SpawnEffect(x, y float64, colorHex string, count int)
}

// Scheduler runs fn after delay on the simulation clock.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// Delays of the two secondary bursts that follow a streak bonus.
var bonusBurstDelays = [...]time.Duration{150 * time.Millisecond, 300 * time.Millisecond}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithEffects sets the particle capability.
func WithEffects(e EffectSpawner) ResolverOption {
	return func(r *Resolver) { r.effects = e }
}

// WithScheduler sets the scheduler used for secondary bonus bursts.
func WithScheduler(s Scheduler) ResolverOption {
	return func(r *Resolver) { r.sched = s }
}

// WithClock sets the time source used to stamp feedback.
func WithClock(now func() time.Duration) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver applies answer outcomes to a System and holds the single active feedback.
type Resolver struct {
	system  *System
	effects EffectSpawner
	sched   Scheduler
	now     func() time.Duration

	active *Feedback
}

// NewResolver creates a resolver around sys.
func NewResolver(sys *System, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		system: sys,
		now:    func() time.Duration { return 0 },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateCorrectAnswer scores a correct answer at (x, y).
func (r *Resolver) ValidateCorrectAnswer(x, y float64) Feedback {
	awarded := r.system.ProcessCorrectAnswer()
	f := correctFeedback(awarded, r.system.State().Streak)

	if f.Type == FeedbackStreakBonus {
		r.spawn(x, y, ColorBonus, BonusParticles)
		if r.sched != nil {
			for i, d := range bonusBurstDelays {
				off := float64(i+1) * 12
				r.sched.Schedule(d, func() {
					r.spawn(x-off, y-off, ColorBonus, BurstParticles)
					r.spawn(x+off, y+off, ColorBonus, BurstParticles)
				})
			}
		}
	} else {
		r.spawn(x, y, ColorCorrect, CorrectParticles)
	}
	return r.activate(f)
}

// HandleIncorrectAnswer scores a wrong answer at (x, y). When correctAnswer is
// non-nil it is disclosed in the feedback.
func (r *Resolver) HandleIncorrectAnswer(x, y float64, correctAnswer *int) Feedback {
	deducted := r.system.ProcessIncorrectAnswer()
	f := incorrectFeedback(deducted, correctAnswer)
	r.spawn(x, y, ColorIncorrect, IncorrectParticles)
	return r.activate(f)
}

// UpdateFeedback clears the active feedback once its duration has elapsed.
func (r *Resolver) UpdateFeedback(now time.Duration) {
	if r.active != nil && r.active.Expired(now) {
		r.active = nil
	}
}

// Active returns a copy of the active feedback, or nil.
func (r *Resolver) Active() *Feedback {
	if r.active == nil {
		return nil
	}
	f := *r.active
	return &f
}

// Reset drops the active feedback.
func (r *Resolver) Reset() {
	r.active = nil
}

func (r *Resolver) activate(f Feedback) Feedback {
	f.CreatedAt = r.now()
	r.active = &f
	return f
}

func (r *Resolver) spawn(x, y float64, color string, count int) {
	if r.effects != nil {
		r.effects.SpawnEffect(x, y, color, count)
	}
}
