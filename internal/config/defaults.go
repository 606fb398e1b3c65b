package config

import (
	_ "embed"
)

//go:embed defaults/stages.yaml
var defaultStagesYAML []byte

// Default returns the built-in three stage sequence: find the dog, find the
// ball, then find the dog next to a decoy ball.
func Default() Config {
	return Config{
		Policy: "terminal",
		Celebration: CelebrationConfig{
			DurationMS: 2000,
			Confetti:   120,
		},
		Placement: PlacementConfig{
			XMinFraction: 0.3,
			MaxAttempts:  1000,
		},
		Frame: FrameConfig{
			X:      0.15,
			Y:      0.5,
			Width:  22,
			Height: 11,
		},
		Stages: []StageConfig{
			{
				Name:      "dog",
				Intro:     "whereis",
				Target:    "dog",
				Threshold: 3,
				Objects:   []ObjectConfig{{ID: "dog"}},
			},
			{
				Name:      "ball",
				Intro:     "whereis",
				Target:    "ball",
				Threshold: 3,
				Objects:   []ObjectConfig{{ID: "ball"}},
			},
			{
				Name:      "dog-and-ball",
				Intro:     "whereis",
				Target:    "dog",
				Threshold: 3,
				Objects:   []ObjectConfig{{ID: "dog"}, {ID: "ball"}},
			},
		},
	}
}

// DefaultYAML returns the embedded default stages.yaml.
func DefaultYAML() []byte {
	return defaultStagesYAML
}
