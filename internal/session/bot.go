package session

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/stage"
)

// Move is one scripted drag and its result.
type Move struct {
	Stage      string
	Level      int // level before the drop
	Object     stage.ObjectID
	Drop       core.Point
	Outcome    Outcome
	Transition *Transition // set after a hit
}

// Bot plays a session without a screen. Skill is the chance of dropping the
// right picture into the frame; the rest of the drops are misses, sometimes
// with a decoy.
type Bot struct {
	rng   *rand.Rand
	skill float64
}

// NewBot creates a bot with skill in [0, 1].
func NewBot(seed int64, skill float64) *Bot {
	return &Bot{
		rng:   rand.New(rand.NewSource(seed)),
		skill: core.ClampF(skill, 0, 1),
	}
}

// Step performs one drag and, on a hit, ends the celebration at once.
func (b *Bot) Step(s *Session) (Move, error) {
	if s.Complete() {
		return Move{}, ErrGameComplete
	}

	st := s.Stage()
	target, ok := st.Object(st.Target())
	if !ok {
		return Move{}, stage.ErrUnknownObject
	}
	frame := st.Frame()
	inFrame := frame.Center().Add(-target.Size.W/2, -target.Size.H/2)

	obj, drop := target, inFrame
	if b.rng.Float64() >= b.skill {
		obj, drop = b.missDrop(st, target, inFrame)
	}

	move := Move{Stage: st.Name(), Level: st.Level(), Object: obj.ID, Drop: drop}

	// Halfway point first, like a pointer on its way.
	mid := core.Point{X: (obj.Position.X + drop.X) / 2, Y: (obj.Position.Y + drop.Y) / 2}
	if err := s.DragChanged(obj.ID, mid); err != nil {
		return move, err
	}
	outcome, err := s.DragEnded(obj.ID, drop)
	if err != nil {
		return move, err
	}
	move.Outcome = outcome
	if outcome == Miss {
		return move, nil
	}

	tr, err := s.CelebrationDone()
	if err != nil {
		return move, err
	}
	move.Transition = &tr
	return move, nil
}

// missDrop picks a decoy dropped into the frame when the stage has one,
// otherwise the target dropped back where it started.
func (b *Bot) missDrop(st *stage.Stage, target stage.Object, inFrame core.Point) (stage.Object, core.Point) {
	var decoys []stage.Object
	for _, o := range st.Objects() {
		if o.ID != target.ID {
			decoys = append(decoys, o)
		}
	}
	if len(decoys) > 0 && b.rng.Intn(2) == 0 {
		d := decoys[b.rng.Intn(len(decoys))]
		center := st.Frame().Center()
		return d, center.Add(-d.Size.W/2, -d.Size.H/2)
	}
	return target, target.Origin
}

// Run plays until the game is complete or maxSteps drags were made.
// report, when non-nil, sees every move.
func (b *Bot) Run(s *Session, maxSteps int, report func(Move)) (Stats, error) {
	s.Start()
	for range maxSteps {
		m, err := b.Step(s)
		if errors.Is(err, ErrGameComplete) {
			break
		}
		if err != nil {
			return s.Stats(), err
		}
		if report != nil {
			report(m)
		}
		if s.Complete() {
			break
		}
	}
	return s.Stats(), nil
}
