package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML and DefaultConfig() diverge:\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("obstacles:\n  base_spacing: 500\nphysics:\n  gravity: 0.4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Obstacles.BaseSpacing != 500 {
		t.Errorf("BaseSpacing = %v, expected 500", cfg.Obstacles.BaseSpacing)
	}
	if cfg.Physics.Gravity != 0.4 {
		t.Errorf("Gravity = %v, expected 0.4", cfg.Physics.Gravity)
	}
	if cfg.Body != DefaultConfig().Body {
		t.Errorf("unspecified sections should keep defaults, got %+v", cfg.Body)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("obstacles:\n  spacng: 10\n")); err == nil {
		t.Error("Parse() should reject unknown keys")
	}
}

func TestValidateRejectsUnplayableGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero playfield", func(c *Config) { c.Playfield.Width = 0 }},
		{"downward jump", func(c *Config) { c.Physics.JumpImpulse = 3 }},
		{"zero frame reference", func(c *Config) { c.Physics.FrameReferenceMs = 0 }},
		{"jitter of one", func(c *Config) { c.Obstacles.SpacingJitter = 1 }},
		{"negative jitter", func(c *Config) { c.Obstacles.SpacingJitter = -0.1 }},
		{"overlapping obstacles", func(c *Config) { c.Obstacles.BaseSpacing = 90 }},
		{"gap not above body", func(c *Config) { c.Obstacles.MinGapHeight = c.Body.Height }},
		{"gap below min", func(c *Config) { c.Obstacles.GapHeight = c.Obstacles.MinGapHeight - 1 }},
		{"gap too tall", func(c *Config) { c.Obstacles.GapHeight = 600 }},
		{"padding swallows body", func(c *Config) { c.Obstacles.CollisionPadding = 12 }},
		{"body under ground", func(c *Config) { c.Body.StartY = 540 }},
		{"bad progression", func(c *Config) { c.Difficulty.Progression.Type = "level" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultySpeedAndGap(t *testing.T) {
	cfg := DefaultConfig().Difficulty
	cfg.Enabled = true
	cfg.Progression = ProgressionConfig{Type: "score", MaxAt: 100}
	cfg.Scaling = ScalingConfig{SpeedMultiplier: 1.0, GapReduction: 100}
	d := NewDifficultyManager(cfg)

	if got := d.Speed(3, 0, 0); got != 3 {
		t.Errorf("Speed at score 0 = %v, expected 3", got)
	}
	if got := d.Speed(3, 50, 0); got != 4.5 {
		t.Errorf("Speed at score 50 = %v, expected 4.5", got)
	}
	if got := d.Speed(3, 1000, 0); got != 6 {
		t.Errorf("Speed past max_at = %v, expected 6", got)
	}
	if got := d.GapHeight(240, 150, 1000, 0); got != 150 {
		t.Errorf("GapHeight should floor at min gap, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DefaultConfig().Difficulty)
	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.Speed(3, 500, 1e6); got != 3 {
		t.Errorf("disabled Speed = %v, expected base", got)
	}
	if got := d.GapHeight(240, 150, 500, 1e6); got != 240 {
		t.Errorf("disabled GapHeight = %v, expected base", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 10000},
	})
	if got := d.Level(0, 5000); got != 0.75 {
		t.Errorf("Level halfway = %v, expected 0.75", got)
	}
}
