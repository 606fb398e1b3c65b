package config

import (
	"fmt"

	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/placement"
	"github.com/vovakirdan/whereisit/internal/registry"
	"github.com/vovakirdan/whereisit/internal/stage"
)

// FrameRect lays the frame out in field. The frame is centered on the
// configured fractions, shrunk to fit and kept inside the field.
func (f FrameConfig) FrameRect(field core.Rect) core.Rect {
	w := min(f.Width, field.W)
	h := min(f.Height, field.H)
	x := field.X + f.X*field.W - w/2
	y := field.Y + f.Y*field.H - h/2
	return core.NewRect(
		core.ClampF(x, field.X, field.Right()-w),
		core.ClampF(y, field.Y, field.Bottom()-h),
		w, h,
	)
}

// StageConfigs converts the stage list to core stage configurations laid
// out in field.
func (c Config) StageConfigs(field core.Rect) ([]stage.Config, error) {
	frame := c.Frame.FrameRect(field)
	out := make([]stage.Config, 0, len(c.Stages))

	for _, s := range c.Stages {
		objects := make([]stage.ObjectSpec, 0, len(s.Objects))
		for _, o := range s.Objects {
			icon, err := registry.Lookup(o.ID)
			if err != nil {
				return nil, fmt.Errorf("config: stage %q: %w", s.Name, err)
			}
			size := icon.Size()
			if o.Width > 0 {
				size.W = o.Width
			}
			if o.Height > 0 {
				size.H = o.Height
			}
			objects = append(objects, stage.ObjectSpec{ID: stage.ObjectID(o.ID), Size: size})
		}

		out = append(out, stage.Config{
			Name:         s.Name,
			Intro:        s.Intro,
			Target:       stage.ObjectID(s.TargetID()),
			Threshold:    s.Threshold,
			Frame:        frame,
			Bounds:       field,
			XMinFraction: c.Placement.XMinFraction,
			Objects:      objects,
		})
	}
	return out, nil
}

// Build validates the configuration and creates the stage sequence for a
// playfield. All stages share one generator seeded with seed.
func Build(cfg Config, field core.Rect, seed int64, prompter stage.Prompter) (*stage.Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	policy, err := stage.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	configs, err := cfg.StageConfigs(field)
	if err != nil {
		return nil, err
	}

	gen := placement.NewGenerator(seed, cfg.Placement.MaxAttempts)
	stages := make([]*stage.Stage, 0, len(configs))
	for _, sc := range configs {
		s, err := stage.New(sc, gen, prompter)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		stages = append(stages, s)
	}
	return stage.NewSequencer(policy, stages...)
}
