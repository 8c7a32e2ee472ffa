package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything so the
// alternate screen is never corrupted.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeed fixes the RNG used for spacing, gap placement and distractors.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithEffects sets the particle capability.
func WithEffects(fx scoring.EffectSpawner) Option {
	return func(e *Engine) {
		e.effects = fx
	}
}

// WithSettings sets the quality settings provider. Defaults to the config's quality section.
func WithSettings(s SettingsProvider) Option {
	return func(e *Engine) {
		if s != nil {
			e.settings = s
		}
	}
}

// WithDebugAssertions makes invariant violations panic. The frame fault
// boundary turns the panic into an OnError report.
func WithDebugAssertions(on bool) Option {
	return func(e *Engine) {
		e.debug = on
	}
}
