// Package config provides YAML-based configuration for the stage sequence:
// which stages exist, which icons they show, how long a celebration lasts
// and how objects are placed.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/whereisit/internal/registry"
	"github.com/vovakirdan/whereisit/internal/stage"
)

// Config is the root of stages.yaml.
type Config struct {
	Policy      string            `yaml:"policy"` // "terminal" or "cyclic"
	Celebration CelebrationConfig `yaml:"celebration"`
	Placement   PlacementConfig   `yaml:"placement"`
	Frame       FrameConfig       `yaml:"frame"`
	Stages      []StageConfig     `yaml:"stages"`
}

// CelebrationConfig controls the pause between a hit and the next level.
type CelebrationConfig struct {
	DurationMS int `yaml:"duration_ms"`
	Confetti   int `yaml:"confetti"` // number of confetti pieces
}

// Duration returns the celebration length.
func (c CelebrationConfig) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}

// PlacementConfig tunes the random placement of objects.
type PlacementConfig struct {
	XMinFraction float64 `yaml:"x_min_fraction"` // left share of the field kept free
	MaxAttempts  int     `yaml:"max_attempts"`   // 0 = generator default
}

// FrameConfig positions the target frame. X and Y are the frame center as
// fractions of the playfield; Width and Height are in cells.
type FrameConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StageConfig describes one stage of the sequence.
type StageConfig struct {
	Name      string         `yaml:"name"`
	Intro     string         `yaml:"intro"`  // intro cue ID, e.g. "whereis"
	Target    string         `yaml:"target"` // icon to find; empty = first object
	Threshold int            `yaml:"threshold"`
	Objects   []ObjectConfig `yaml:"objects"`
}

// ObjectConfig places an icon on the stage. A zero width or height takes
// the icon's art size.
type ObjectConfig struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := stage.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Celebration.DurationMS < 0 {
		errs = append(errs, fmt.Errorf("celebration.duration_ms must be >= 0, got %d", c.Celebration.DurationMS))
	}
	if c.Celebration.Confetti < 0 {
		errs = append(errs, fmt.Errorf("celebration.confetti must be >= 0, got %d", c.Celebration.Confetti))
	}
	if c.Placement.XMinFraction < 0 || c.Placement.XMinFraction >= 1 {
		errs = append(errs, fmt.Errorf("placement.x_min_fraction must be in [0, 1), got %v", c.Placement.XMinFraction))
	}
	if c.Placement.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("placement.max_attempts must be >= 0, got %d", c.Placement.MaxAttempts))
	}
	if c.Frame.X < 0 || c.Frame.X > 1 || c.Frame.Y < 0 || c.Frame.Y > 1 {
		errs = append(errs, fmt.Errorf("frame.x and frame.y must be in [0, 1], got %v, %v", c.Frame.X, c.Frame.Y))
	}
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		errs = append(errs, fmt.Errorf("frame size must be positive, got %vx%v", c.Frame.Width, c.Frame.Height))
	}

	if len(c.Stages) == 0 {
		errs = append(errs, errors.New("at least one stage is required"))
	}
	names := make(map[string]bool, len(c.Stages))
	for i, s := range c.Stages {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("stages[%d]: name is required", i))
		} else if names[s.Name] {
			errs = append(errs, fmt.Errorf("stages[%d]: duplicate name %q", i, s.Name))
		}
		names[s.Name] = true
		errs = append(errs, s.validate(i)...)
	}

	return errors.Join(errs...)
}

func (s StageConfig) validate(i int) []error {
	var errs []error
	if s.Threshold < 1 {
		errs = append(errs, fmt.Errorf("stage %q: threshold must be >= 1, got %d", s.Name, s.Threshold))
	}
	if len(s.Objects) == 0 {
		errs = append(errs, fmt.Errorf("stage %q: at least one object is required", s.Name))
	}
	ids := make(map[string]bool, len(s.Objects))
	for _, o := range s.Objects {
		if !registry.Exists(o.ID) {
			errs = append(errs, fmt.Errorf("stage %q: unknown icon %q", s.Name, o.ID))
		}
		if ids[o.ID] {
			errs = append(errs, fmt.Errorf("stage %q: icon %q listed twice", s.Name, o.ID))
		}
		ids[o.ID] = true
		if o.Width < 0 || o.Height < 0 {
			errs = append(errs, fmt.Errorf("stage %q: icon %q has negative size", s.Name, o.ID))
		}
	}
	if s.Target != "" && !ids[s.Target] {
		errs = append(errs, fmt.Errorf("stage %q: target %q is not among its objects", s.Name, s.Target))
	}
	return errs
}

// TargetID returns the icon the stage asks for.
func (s StageConfig) TargetID() string {
	if s.Target != "" || len(s.Objects) == 0 {
		return s.Target
	}
	return s.Objects[0].ID
}
