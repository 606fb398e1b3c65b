package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/whereisit/internal/stage"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty parses a preset name. An empty string selects normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyDifficulty adjusts the configuration for a preset. Easy stages need
// fewer rounds; hard stages need more and push objects further from the frame.
func ApplyDifficulty(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		for i := range cfg.Stages {
			cfg.Stages[i].Threshold = 2
		}
	case DifficultyHard:
		for i := range cfg.Stages {
			cfg.Stages[i].Threshold += 2
		}
		cfg.Placement.XMinFraction = max(cfg.Placement.XMinFraction, 0.5)
	}
}

// Overrides are command-line adjustments applied on top of the loaded file.
type Overrides struct {
	Difficulty string
	Rounds     int    // levels per stage, 0 keeps the configured thresholds
	Policy     string // empty keeps the configured policy
}

// ApplyOverrides applies the difficulty preset first, so an explicit round
// count always wins.
func ApplyOverrides(cfg *Config, o Overrides) error {
	preset, err := ParseDifficulty(o.Difficulty)
	if err != nil {
		return err
	}
	ApplyDifficulty(cfg, preset)

	if o.Rounds < 0 {
		return fmt.Errorf("config: rounds must be >= 0, got %d", o.Rounds)
	}
	if o.Rounds > 0 {
		for i := range cfg.Stages {
			cfg.Stages[i].Threshold = o.Rounds
		}
	}

	if o.Policy != "" {
		p, err := stage.ParsePolicy(o.Policy)
		if err != nil {
			return err
		}
		cfg.Policy = p.String()
	}
	return nil
}
