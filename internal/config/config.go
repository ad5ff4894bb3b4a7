// Package config loads the YAML configuration for Lines: variant rules,
// animation pacing and the player name.
package config

import (
	"strings"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// Variant identifiers, matching the registered game IDs.
const (
	VariantStandard = "lines"
	VariantClassic  = "lines_classic"
)

// LinesConfig contains all configuration for Lines.
type LinesConfig struct {
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
	Player    PlayerConfig    `yaml:"player"`
}

// RulesConfig holds the per-variant rule knobs.
type RulesConfig struct {
	InitialBalls      int  `yaml:"initial_balls"`
	InitialPreview    bool `yaml:"initial_preview"`
	ClearSpawnedLines bool `yaml:"clear_spawned_lines"`
}

// AnimationConfig paces the cosmetic animations.
type AnimationConfig struct {
	MoveStepMs int `yaml:"move_step_ms"` // per path cell
	PopMs      int `yaml:"pop_ms"`       // cleared balls stay visible this long
}

// PlayerConfig identifies the local player on the leaderboard.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

const (
	maxMoveStepMs = 500
	maxPopMs      = 2000
	maxNameLen    = 16
	defaultName   = "player"
)

// Normalize clamps every value into its accepted range.
func (c *LinesConfig) Normalize() {
	maxInitial := core.Size*core.Size - core.BallsPerTurn
	if c.Rules.InitialBalls < 1 || c.Rules.InitialBalls > maxInitial {
		c.Rules.InitialBalls = max(1, min(c.Rules.InitialBalls, maxInitial))
	}
	c.Animation.MoveStepMs = max(0, min(c.Animation.MoveStepMs, maxMoveStepMs))
	c.Animation.PopMs = max(0, min(c.Animation.PopMs, maxPopMs))

	name := strings.TrimSpace(c.Player.Name)
	if name == "" {
		name = defaultName
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	c.Player.Name = name
}

// ApplyVariant adjusts the rules for a variant ID. Unknown IDs leave the
// configuration unchanged.
func ApplyVariant(cfg *LinesConfig, variant string) {
	if variant == VariantClassic {
		cfg.Rules.InitialBalls = 5
		cfg.Rules.InitialPreview = false
	}
}
