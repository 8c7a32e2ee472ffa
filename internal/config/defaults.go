package config

import (
	_ "embed"
)

//go:embed defaults/mathflyer.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
// It mirrors defaults/mathflyer.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Playfield: Playfield{
			Width:           800,
			Height:          600,
			GroundHeight:    50,
			CeilingY:        0,
			MaxFrameDeltaMs: 50,
		},
		Physics: Physics{
			Gravity:          0.5,
			JumpImpulse:      -8.0,
			MaxFallSpeed:     10.0,
			FrameReferenceMs: 16.67,
		},
		Body: Body{
			StartX: 150,
			StartY: 260,
			Width:  34,
			Height: 24,
		},
		Obstacles: Obstacles{
			Width:            80,
			BaseSpeed:        3.0,
			BaseSpacing:      450,
			SpacingJitter:    0.2,
			FirstOffset:      200,
			GapHeight:        240,
			MinGapHeight:     150,
			TopMargin:        60,
			BottomMargin:     60,
			CollisionPadding: 4,
		},
		Quality: Quality{
			TargetFrameRate:       60,
			EnableParticleEffects: true,
			MaxParticleCount:      150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
				GapReduction:    60,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
