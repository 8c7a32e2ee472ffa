// Package config provides YAML-based configuration loading, validation and
// difficulty management for the math flyer engine.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains every tunable constant of a run. Coordinates are playfield
// pixels; physics values are expressed per reference frame (60 fps).
type Config struct {
	Playfield  Playfield        `yaml:"playfield"`
	Physics    Physics          `yaml:"physics"`
	Body       Body             `yaml:"body"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Quality    Quality          `yaml:"quality"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Playfield defines the simulated canvas and its terrain.
type Playfield struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GroundHeight    float64 `yaml:"ground_height"`      // Terrain strip at the bottom
	CeilingY        float64 `yaml:"ceiling_y"`          // Body top above this line is a crash
	MaxFrameDeltaMs float64 `yaml:"max_frame_delta_ms"` // Longer frames are clamped
}

// GroundY returns the y-coordinate of the terrain surface.
func (p Playfield) GroundY() float64 {
	return p.Height - p.GroundHeight
}

// Physics defines the body's motion parameters.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`            // Added to velocity per reference frame
	JumpImpulse      float64 `yaml:"jump_impulse"`       // Velocity after a jump (negative = up)
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`     // Terminal velocity
	FrameReferenceMs float64 `yaml:"frame_reference_ms"` // Frame length the constants are tuned for
}

// Body defines the controllable body's hitbox and start position.
type Body struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Obstacles defines obstacle geometry and spawn scheduling.
type Obstacles struct {
	Width            float64 `yaml:"width"`
	BaseSpeed        float64 `yaml:"base_speed"`        // Leftward pixels per reference frame
	BaseSpacing      float64 `yaml:"base_spacing"`      // Mean distance between spawns
	SpacingJitter    float64 `yaml:"spacing_jitter"`    // Spacing is drawn from base*(1±jitter)
	FirstOffset      float64 `yaml:"first_offset"`      // Distance past the right edge of the first spawn
	GapHeight        float64 `yaml:"gap_height"`        // Passable gap holding both answer zones
	MinGapHeight     float64 `yaml:"min_gap_height"`    // Floor for the gap under difficulty scaling
	TopMargin        float64 `yaml:"top_margin"`        // Minimum solid obstacle above the gap
	BottomMargin     float64 `yaml:"bottom_margin"`     // Minimum solid obstacle below the gap
	CollisionPadding float64 `yaml:"collision_padding"` // Per-side body shrink for obstacle hits
}

// Quality mirrors the read-only settings the performance layer exposes.
type Quality struct {
	TargetFrameRate       int  `yaml:"target_frame_rate"`
	EnableParticleEffects bool `yaml:"enable_particle_effects"`
	MaxParticleCount      int  `yaml:"max_particle_count"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Score or elapsed ms at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fraction added to speed at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Gap shrink in pixels at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty input means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
			cfg.Difficulty.Progression.Type = "score"
		}
	}
}

// Validate rejects configurations whose geometry could produce an unplayable run.
func (c Config) Validate() error {
	p, ph, b, o := c.Playfield, c.Physics, c.Body, c.Obstacles

	checks := []struct {
		ok  bool
		msg string
	}{
		{p.Width > 0 && p.Height > 0, "playfield.width and playfield.height must be positive"},
		{p.GroundHeight >= 0 && p.GroundY() > p.CeilingY, "playfield.ground_height leaves no room above the ceiling"},
		{p.CeilingY >= 0, "playfield.ceiling_y must not be negative"},
		{p.MaxFrameDeltaMs > 0, "playfield.max_frame_delta_ms must be positive"},
		{ph.FrameReferenceMs > 0, "physics.frame_reference_ms must be positive"},
		{ph.Gravity >= 0, "physics.gravity must not be negative"},
		{ph.JumpImpulse < 0, "physics.jump_impulse must be negative (upward)"},
		{ph.MaxFallSpeed > 0, "physics.max_fall_speed must be positive"},
		{b.Width > 0 && b.Height > 0, "body.width and body.height must be positive"},
		{b.StartY >= p.CeilingY && b.StartY+b.Height <= p.GroundY(), "body.start_y must place the body between ceiling and ground"},
		{b.StartX >= 0 && b.StartX+b.Width <= p.Width, "body.start_x must place the body inside the playfield"},
		{o.Width > 0, "obstacles.width must be positive"},
		{o.BaseSpeed > 0, "obstacles.base_speed must be positive"},
		{o.BaseSpacing > 0, "obstacles.base_spacing must be positive"},
		{o.SpacingJitter >= 0 && o.SpacingJitter < 1, "obstacles.spacing_jitter must be in [0, 1)"},
		{o.BaseSpacing*(1-o.SpacingJitter) > o.Width, "obstacles.base_spacing is too small for obstacles not to overlap"},
		{o.FirstOffset >= 0, "obstacles.first_offset must not be negative"},
		{o.MinGapHeight > b.Height, "obstacles.min_gap_height must exceed body.height"},
		{o.GapHeight >= o.MinGapHeight, "obstacles.gap_height must be at least obstacles.min_gap_height"},
		{o.TopMargin >= 0 && o.BottomMargin >= 0, "obstacles margins must not be negative"},
		{o.TopMargin+o.GapHeight+o.BottomMargin <= p.GroundY()-p.CeilingY, "obstacles.gap_height plus margins does not fit the playfield"},
		{o.CollisionPadding >= 0 && 2*o.CollisionPadding < min(b.Width, b.Height), "obstacles.collision_padding must be smaller than half the body"},
		{c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1, "difficulty.initial_level must be in [0, 1]"},
		{validProgression(c.Difficulty.Progression.Type), "difficulty.progression.type must be score, time or none"},
	}

	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}
	return nil
}

func validProgression(t string) bool {
	switch t {
	case "", "none", "score", "time":
		return true
	default:
		return false
	}
}
