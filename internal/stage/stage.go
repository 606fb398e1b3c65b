// Package stage implements the level and stage progression of the matching
// game: hit detection, per-stage state transitions and the stage sequence.
//
// The package is UI-agnostic. Input arrives as plain method calls, audio goes
// out through the Prompter interface, and timing (the celebration pause before
// AdvanceLevel) belongs to the caller.
package stage

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/whereisit/internal/core"
)

// Placer picks a free position for an object. *placement.Generator satisfies it.
type Placer interface {
	Generate(bounds core.Rect, size core.Size, excluded []core.Rect, xMinFraction float64) (core.Point, error)
}

// Prompter is the audio collaborator. Calls must not block on playback.
type Prompter interface {
	PlayIntroAndTarget(introID, targetID string)
}

type silentPrompter struct{}

func (silentPrompter) PlayIntroAndTarget(string, string) {}

// Playable is the capability set a stage offers to the input layer.
type Playable interface {
	CheckHit(id ObjectID, final core.Point) bool
	Reset()
	AdvanceLevel() error
}

var _ Playable = (*Stage)(nil)

// Config describes one stage.
type Config struct {
	Name         string
	Intro        string   // intro cue played before the target name
	Target       ObjectID // object that must reach the frame; empty accepts any
	Threshold    int      // successful levels needed to accomplish the stage
	Frame        core.Rect
	Bounds       core.Rect // playfield objects are placed in
	XMinFraction float64
	Objects      []ObjectSpec
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	var errs []error
	if c.Threshold < 1 {
		errs = append(errs, fmt.Errorf("threshold must be >= 1, got %d", c.Threshold))
	}
	if len(c.Objects) == 0 {
		errs = append(errs, errors.New("at least one object is required"))
	}
	if c.Frame.W < 0 || c.Frame.H < 0 {
		errs = append(errs, fmt.Errorf("frame size must be non-negative, got %vx%v", c.Frame.W, c.Frame.H))
	}
	seen := make(map[ObjectID]bool, len(c.Objects))
	for _, o := range c.Objects {
		if o.ID == "" {
			errs = append(errs, errors.New("object id must not be empty"))
			continue
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate object %q", o.ID))
		}
		seen[o.ID] = true
		if o.Size.W < 0 || o.Size.H < 0 {
			errs = append(errs, fmt.Errorf("object %q has negative size", o.ID))
		}
	}
	if c.Target != "" && !seen[c.Target] {
		errs = append(errs, fmt.Errorf("target %q is not among the stage objects", c.Target))
	}
	if len(errs) > 0 {
		return fmt.Errorf("stage %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

// Stage is the mutable state of one themed round.
//
// Lifecycle: Idle -> RecordHit -> Winning -> AdvanceLevel -> Idle(level+1).
// A miss keeps the stage Idle and returns objects to their origins. Once the
// level reaches the threshold the stage is accomplished and stays that way
// until the sequencer moves past it.
type Stage struct {
	cfg      Config
	placer   Placer
	prompter Prompter

	objects      []Object
	level        int
	winning      bool
	accomplished bool
}

// New validates cfg and places the stage objects. A nil prompter is silent.
func New(cfg Config, placer Placer, prompter Prompter) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		return nil, fmt.Errorf("stage %q: placer is required", cfg.Name)
	}
	if prompter == nil {
		prompter = silentPrompter{}
	}

	s := &Stage{
		cfg:      cfg,
		placer:   placer,
		prompter: prompter,
		objects:  make([]Object, len(cfg.Objects)),
	}
	for i, spec := range cfg.Objects {
		s.objects[i] = Object{ID: spec.ID, Size: spec.Size}
	}

	positions, err := s.place()
	if err != nil {
		return nil, err
	}
	s.commit(positions)
	return s, nil
}

// place generates new positions for all objects without touching state.
// Each object avoids the frame and every object placed before it.
func (s *Stage) place() ([]core.Point, error) {
	positions := make([]core.Point, len(s.objects))
	excluded := make([]core.Rect, 0, len(s.objects)+1)
	excluded = append(excluded, s.cfg.Frame)

	for i, o := range s.objects {
		p, err := s.placer.Generate(s.cfg.Bounds, o.Size, excluded, s.cfg.XMinFraction)
		if err != nil {
			return nil, fmt.Errorf("stage %q: placing %q: %w", s.cfg.Name, o.ID, err)
		}
		positions[i] = p
		excluded = append(excluded, core.RectAt(p, o.Size))
	}
	return positions, nil
}

func (s *Stage) commit(positions []core.Point) {
	for i := range s.objects {
		s.objects[i].Position = positions[i]
		s.objects[i].Origin = positions[i]
	}
}

func (s *Stage) find(id ObjectID) int {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return i
		}
	}
	return -1
}

// Move sets an object's current position while it is being dragged.
func (s *Stage) Move(id ObjectID, p core.Point) error {
	i := s.find(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownObject, id)
	}
	s.objects[i].Position = p
	return nil
}

// CheckHit reports whether dropping object id at final scores.
func (s *Stage) CheckHit(id ObjectID, final core.Point) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	return IsHit(final, s.objects[i].Size, s.cfg.Frame, s.cfg.Target, id)
}

// Reset returns every object to its origin and repeats the prompt.
// Level, winning and accomplished are left unchanged.
func (s *Stage) Reset() {
	for i := range s.objects {
		s.objects[i].Position = s.objects[i].Origin
	}
	s.Prompt()
}

// Prompt plays the "where is ..." cue for this stage. Accomplished stages
// stay quiet.
func (s *Stage) Prompt() {
	if s.accomplished {
		return
	}
	s.prompter.PlayIntroAndTarget(s.cfg.Intro, string(s.promptTarget()))
}

func (s *Stage) promptTarget() ObjectID {
	if s.cfg.Target != "" {
		return s.cfg.Target
	}
	return s.objects[0].ID
}

// RecordHit marks the current level as won. Calling it again before
// AdvanceLevel has no further effect.
func (s *Stage) RecordHit() error {
	if s.accomplished {
		return fmt.Errorf("%w: stage %q is already accomplished", ErrInvalidTransition, s.cfg.Name)
	}
	s.winning = true
	return nil
}

// AdvanceLevel moves to the next level after a recorded hit.
//
// Without a pending hit it returns ErrInvalidTransition and changes nothing,
// so one hit can never advance the level twice. New positions are generated
// before any state changes; a placement error leaves the stage winning and
// the call may be retried.
func (s *Stage) AdvanceLevel() error {
	if !s.winning {
		return fmt.Errorf("%w: stage %q has no recorded hit", ErrInvalidTransition, s.cfg.Name)
	}

	positions, err := s.place()
	if err != nil {
		return err
	}

	s.level++
	s.commit(positions)
	s.winning = false

	if s.level >= s.cfg.Threshold {
		s.accomplished = true
		return nil
	}
	s.Prompt()
	return nil
}

// enter prepares the stage for re-entry from the sequencer.
func (s *Stage) enter() {
	s.level = 1
}

// consume clears the accomplished flag once the sequencer has moved on.
func (s *Stage) consume() {
	s.accomplished = false
}

// IsAccomplished reports whether the stage reached its threshold.
func (s *Stage) IsAccomplished() bool {
	return s.accomplished
}

// IsWinning reports whether a hit is waiting for AdvanceLevel.
func (s *Stage) IsWinning() bool {
	return s.winning
}

// Level returns the number of completed levels.
func (s *Stage) Level() int {
	return s.level
}

// Threshold returns the level count that accomplishes the stage.
func (s *Stage) Threshold() int {
	return s.cfg.Threshold
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return s.cfg.Name
}

// Target returns the object that must be dropped into the frame.
func (s *Stage) Target() ObjectID {
	return s.promptTarget()
}

// Frame returns the target frame.
func (s *Stage) Frame() core.Rect {
	return s.cfg.Frame
}

// Bounds returns the playfield.
func (s *Stage) Bounds() core.Rect {
	return s.cfg.Bounds
}

// XMinFraction returns the share of the field width kept free of objects.
func (s *Stage) XMinFraction() float64 {
	return s.cfg.XMinFraction
}

// Objects returns a copy of the stage objects in draw order.
func (s *Stage) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Object returns the object with the given ID.
func (s *Stage) Object(id ObjectID) (Object, bool) {
	i := s.find(id)
	if i < 0 {
		return Object{}, false
	}
	return s.objects[i], true
}
