package engine

import (
	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// SettingsProvider exposes the read-only quality settings. The engine queries
// it but never changes it.
type SettingsProvider interface {
	Settings() config.Quality
}

// StaticSettings is a SettingsProvider that never changes.
type StaticSettings config.Quality

// Settings returns the fixed quality settings.
func (s StaticSettings) Settings() config.Quality {
	return config.Quality(s)
}

// effectGate forwards effects to the particle capability when the quality
// settings allow it, capping the particle count.
type effectGate struct {
	target   scoring.EffectSpawner
	settings SettingsProvider
}

func (g effectGate) SpawnEffect(x, y float64, colorHex string, count int) {
	if g.target == nil {
		return
	}
	q := g.settings.Settings()
	if !q.EnableParticleEffects {
		return
	}
	if q.MaxParticleCount > 0 && count > q.MaxParticleCount {
		count = q.MaxParticleCount
	}
	if count <= 0 {
		return
	}
	g.target.SpawnEffect(x, y, colorHex, count)
}
