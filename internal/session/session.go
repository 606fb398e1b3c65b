// Package session binds pointer input to the stage core. It is the glue a
// front end talks to: drags go in, hits, misses and stage changes come out,
// and every transition is logged.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/whereisit/internal/audio"
	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/stage"
)

var (
	// ErrCelebrating is returned for drags while a hit is being celebrated.
	ErrCelebrating = errors.New("session: celebration in progress")

	// ErrGameComplete is returned for input after the last stage.
	ErrGameComplete = errors.New("session: game complete")
)

// Outcome is the result of a finished drag.
type Outcome int

const (
	Miss Outcome = iota
	Hit
)

func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}
	return "miss"
}

// Transition describes what CelebrationDone changed.
type Transition struct {
	Level        int    // level of the active stage afterwards
	Accomplished bool   // the celebrated stage reached its threshold
	StageChanged bool   // the sequencer moved to another stage
	Stage        string // name of the active stage afterwards
	Complete     bool   // a terminal sequence ran out of stages
}

// Stats counts drag outcomes over the session.
type Stats struct {
	Hits     int
	Misses   int
	Levels   int
	Stages   int
	Complete bool
}

// Session is one play-through of a stage sequence.
// It is not safe for concurrent use.
type Session struct {
	id     string
	seq    *stage.Sequencer
	player audio.Player
	logger *log.Logger

	dragging stage.ObjectID
	stats    Stats
}

// New creates a session over seq. A nil player is silent and a nil logger
// discards output.
func New(seq *stage.Sequencer, player audio.Player, logger *log.Logger) *Session {
	if player == nil {
		player = audio.Silent{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		seq:    seq,
		player: player,
		logger: logger.With("session", id[:8]),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Stage returns the active stage.
func (s *Session) Stage() *stage.Stage {
	return s.seq.Current()
}

// Sequencer returns the underlying stage sequence.
func (s *Session) Sequencer() *stage.Sequencer {
	return s.seq
}

// Celebrating reports whether a hit is waiting for CelebrationDone.
func (s *Session) Celebrating() bool {
	return s.seq.Current().IsWinning()
}

// Complete reports whether the game is over.
func (s *Session) Complete() bool {
	return s.seq.Complete()
}

// Dragging returns the object being dragged, if any.
func (s *Session) Dragging() (stage.ObjectID, bool) {
	return s.dragging, s.dragging != ""
}

// Stats returns the outcome counters.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Complete = s.seq.Complete()
	return st
}

// Start plays the opening prompt of the active stage.
func (s *Session) Start() {
	cur := s.seq.Current()
	s.logger.Info("session started",
		"stage", cur.Name(),
		"target", cur.Target(),
		"stages", s.seq.Len(),
		"policy", s.seq.Policy(),
	)
	cur.Prompt()
}

// Pick returns the topmost object under p.
func (s *Session) Pick(p core.Point) (stage.Object, bool) {
	objs := s.seq.Current().Objects()
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i].Bounds().Contains(p) {
			return objs[i], true
		}
	}
	return stage.Object{}, false
}

func (s *Session) acceptInput() error {
	if s.seq.Complete() {
		return ErrGameComplete
	}
	if s.Celebrating() {
		return ErrCelebrating
	}
	return nil
}

// DragChanged moves object id to p.
func (s *Session) DragChanged(id stage.ObjectID, p core.Point) error {
	if err := s.acceptInput(); err != nil {
		return err
	}
	if err := s.seq.Current().Move(id, p); err != nil {
		return err
	}
	s.dragging = id
	return nil
}

// DragEnded drops object id at p and applies the outcome: a hit starts the
// celebration, a miss sends every object home and repeats the prompt.
func (s *Session) DragEnded(id stage.ObjectID, p core.Point) (Outcome, error) {
	if err := s.acceptInput(); err != nil {
		return Miss, err
	}
	cur := s.seq.Current()
	if _, ok := cur.Object(id); !ok {
		return Miss, fmt.Errorf("%w: %q", stage.ErrUnknownObject, id)
	}
	s.dragging = ""

	if !cur.CheckHit(id, p) {
		s.stats.Misses++
		s.logger.Debug("miss", "stage", cur.Name(), "object", id, "x", p.X, "y", p.Y)
		cur.Reset()
		return Miss, nil
	}

	if err := cur.RecordHit(); err != nil {
		return Miss, err
	}
	_ = cur.Move(id, p)
	s.stats.Hits++
	s.logger.Info("hit", "stage", cur.Name(), "object", id, "level", cur.Level())
	s.player.PlayCelebration()
	return Hit, nil
}

// DragCancelled handles a drag abandoned by the platform. It counts as a miss
// once the object has moved; selecting an object without moving it is free.
func (s *Session) DragCancelled(id stage.ObjectID) error {
	if s.dragging == "" {
		return nil
	}
	s.dragging = ""
	if err := s.acceptInput(); err != nil {
		return err
	}
	cur := s.seq.Current()
	s.stats.Misses++
	s.logger.Debug("drag cancelled", "stage", cur.Name(), "object", id)
	cur.Reset()
	return nil
}

// CelebrationDone is called by the front end once the celebration is over.
// It advances the level and, when the stage is accomplished, the sequence.
func (s *Session) CelebrationDone() (Transition, error) {
	if s.seq.Complete() {
		return Transition{}, ErrGameComplete
	}

	cur := s.seq.Current()
	if err := cur.AdvanceLevel(); err != nil {
		return Transition{}, err
	}
	s.stats.Levels++

	t := Transition{
		Level:        cur.Level(),
		Accomplished: cur.IsAccomplished(),
		Stage:        cur.Name(),
	}
	s.logger.Info("level advanced", "stage", cur.Name(), "level", cur.Level(), "threshold", cur.Threshold())

	if !t.Accomplished {
		return t, nil
	}
	s.stats.Stages++

	moved, err := s.seq.Advance()
	switch {
	case errors.Is(err, stage.ErrSequenceExhausted):
		t.Complete = true
		s.logger.Info("game complete", "hits", s.stats.Hits, "misses", s.stats.Misses)
		return t, nil
	case err != nil:
		return t, err
	case moved:
		next := s.seq.Current()
		t.StageChanged = true
		t.Stage = next.Name()
		t.Level = next.Level()
		s.logger.Info("stage advanced",
			"from", cur.Name(),
			"to", next.Name(),
			"index", s.seq.Index(),
		)
		next.Prompt()
	}
	return t, nil
}
