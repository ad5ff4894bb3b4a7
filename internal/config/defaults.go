package config

import (
	_ "embed"
)

//go:embed defaults/lines.yaml
var defaultLinesYAML []byte

// DefaultLinesConfig returns the built-in configuration. It matches
// defaults/lines.yaml and backs it when the embedded file cannot be read.
func DefaultLinesConfig() LinesConfig {
	return LinesConfig{
		Rules: RulesConfig{
			InitialBalls:   3,
			InitialPreview: true,
		},
		Animation: AnimationConfig{
			MoveStepMs: 40,
			PopMs:      300,
		},
		Player: PlayerConfig{
			Name: defaultName,
		},
	}
}
