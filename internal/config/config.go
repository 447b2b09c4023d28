// Package config provides YAML-based game configuration loading and
// difficulty presets for the game.
package config

import (
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Gravity    GravityConfig    `yaml:"gravity"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GravityConfig defines the fall speed curve in milliseconds.
type GravityConfig struct {
	BaseMS int `yaml:"base_ms"` // Interval at level 1
	StepMS int `yaml:"step_ms"` // Reduction per level
	MinMS  int `yaml:"min_ms"`  // Lower bound
}

// DisplayConfig defines what the renderer shows.
type DisplayConfig struct {
	Preview int  `yaml:"preview"`
	Ghost   bool `yaml:"ghost"`
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables acceleration.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the gravity curve and display settings are usable.
func (c TetrisConfig) Validate() error {
	g := c.Gravity
	if g.BaseMS <= 0 {
		return fmt.Errorf("gravity.base_ms must be positive, got %d", g.BaseMS)
	}
	if g.StepMS < 0 {
		return fmt.Errorf("gravity.step_ms must not be negative, got %d", g.StepMS)
	}
	if g.MinMS <= 0 || g.MinMS > g.BaseMS {
		return fmt.Errorf("gravity.min_ms must be in (0, base_ms], got %d", g.MinMS)
	}
	if c.Display.Preview < 1 || c.Display.Preview > 6 {
		return fmt.Errorf("display.preview must be between 1 and 6, got %d", c.Display.Preview)
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return fmt.Errorf("difficulty.preset: %w", err)
	}
	return nil
}

// Durations returns the gravity curve as durations.
func (g GravityConfig) Durations() (base, step, minimum time.Duration) {
	return time.Duration(g.BaseMS) * time.Millisecond,
		time.Duration(g.StepMS) * time.Millisecond,
		time.Duration(g.MinMS) * time.Millisecond
}
