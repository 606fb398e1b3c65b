package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/placement"
	"github.com/vovakirdan/whereisit/internal/stage"
)

type recordingPlayer struct {
	prompts      []string
	celebrations int
}

func (r *recordingPlayer) PlayIntroAndTarget(introID, targetID string) {
	r.prompts = append(r.prompts, introID+"/"+targetID)
}

func (r *recordingPlayer) PlayCelebration() {
	r.celebrations++
}

var (
	frame = core.NewRect(60, 300, 300, 300)
	// Drop position whose center lands in the frame for a 200x200 object.
	inFrame = core.Point{X: 70, Y: 310}
	outside = core.Point{X: 500, Y: 500}
)

func newTestSession(t *testing.T, policy stage.Policy, threshold int, names ...string) (*Session, *recordingPlayer, *bytes.Buffer) {
	t.Helper()
	player := &recordingPlayer{}
	gen := placement.NewGenerator(5, 0)

	stages := make([]*stage.Stage, 0, len(names))
	for _, name := range names {
		st, err := stage.New(stage.Config{
			Name:         name,
			Intro:        "whereis",
			Target:       stage.ObjectID(name),
			Threshold:    threshold,
			Frame:        frame,
			Bounds:       core.NewRect(0, 0, 1024, 768),
			XMinFraction: 0.3,
			Objects:      []stage.ObjectSpec{{ID: stage.ObjectID(name), Size: core.Size{W: 200, H: 200}}},
		}, gen, player)
		if err != nil {
			t.Fatalf("stage.New() error = %v", err)
		}
		stages = append(stages, st)
	}
	seq, err := stage.NewSequencer(policy, stages...)
	if err != nil {
		t.Fatalf("NewSequencer() error = %v", err)
	}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return New(seq, player, logger), player, &buf
}

func TestNewAssignsID(t *testing.T) {
	a, _, _ := newTestSession(t, stage.PolicyTerminal, 1, "dog")
	b, _, _ := newTestSession(t, stage.PolicyTerminal, 1, "dog")
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session IDs %q and %q should be unique and non-empty", a.ID(), b.ID())
	}
}

func TestNewDefaults(t *testing.T) {
	seq, err := stage.NewSequencer(stage.PolicyTerminal, mustStage(t))
	if err != nil {
		t.Fatal(err)
	}
	s := New(seq, nil, nil)
	s.Start()
	if _, err := s.DragEnded("dog", inFrame); err != nil {
		t.Errorf("DragEnded() with silent defaults error = %v", err)
	}
}

func mustStage(t *testing.T) *stage.Stage {
	t.Helper()
	st, err := stage.New(stage.Config{
		Name:      "dog",
		Target:    "dog",
		Threshold: 1,
		Frame:     frame,
		Bounds:    core.NewRect(0, 0, 1024, 768),
		Objects:   []stage.ObjectSpec{{ID: "dog", Size: core.Size{W: 200, H: 200}}},
	}, placement.NewGenerator(1, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestStartPrompts(t *testing.T) {
	s, player, buf := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	s.Start()

	if len(player.prompts) != 1 || player.prompts[0] != "whereis/dog" {
		t.Errorf("prompts = %v, expected [whereis/dog]", player.prompts)
	}
	if !strings.Contains(buf.String(), "session started") {
		t.Errorf("log missing session start:\n%s", buf.String())
	}
}

func TestDragMissResets(t *testing.T) {
	s, player, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	origin, _ := s.Stage().Object("dog")

	if err := s.DragChanged("dog", outside); err != nil {
		t.Fatalf("DragChanged() error = %v", err)
	}
	if id, ok := s.Dragging(); !ok || id != "dog" {
		t.Errorf("Dragging() = (%q, %v), expected dog", id, ok)
	}

	outcome, err := s.DragEnded("dog", outside)
	if err != nil || outcome != Miss {
		t.Fatalf("DragEnded() = (%v, %v), expected miss", outcome, err)
	}

	o, _ := s.Stage().Object("dog")
	if o.Position != origin.Origin {
		t.Errorf("Position = %v, expected origin %v", o.Position, origin.Origin)
	}
	if _, ok := s.Dragging(); ok {
		t.Error("Dragging() should be cleared after drop")
	}
	if len(player.prompts) != 1 {
		t.Errorf("miss should re-prompt once, got %v", player.prompts)
	}
	if s.Stats().Misses != 1 {
		t.Errorf("Misses = %d, expected 1", s.Stats().Misses)
	}
}

func TestDragHitCelebrates(t *testing.T) {
	s, player, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")

	outcome, err := s.DragEnded("dog", inFrame)
	if err != nil || outcome != Hit {
		t.Fatalf("DragEnded() = (%v, %v), expected hit", outcome, err)
	}
	if !s.Celebrating() {
		t.Error("Celebrating() = false after hit")
	}
	if player.celebrations != 1 {
		t.Errorf("celebrations = %d, expected 1", player.celebrations)
	}
	if o, _ := s.Stage().Object("dog"); o.Position != inFrame {
		t.Errorf("hit object Position = %v, expected it to stay at %v", o.Position, inFrame)
	}

	if err := s.DragChanged("dog", outside); !errors.Is(err, ErrCelebrating) {
		t.Errorf("DragChanged() during celebration error = %v, expected ErrCelebrating", err)
	}
	if _, err := s.DragEnded("dog", inFrame); !errors.Is(err, ErrCelebrating) {
		t.Errorf("DragEnded() during celebration error = %v, expected ErrCelebrating", err)
	}

	tr, err := s.CelebrationDone()
	if err != nil {
		t.Fatalf("CelebrationDone() error = %v", err)
	}
	if tr.Level != 1 || tr.Accomplished || tr.StageChanged {
		t.Errorf("CelebrationDone() = %+v, expected level 1 only", tr)
	}
	if s.Celebrating() {
		t.Error("Celebrating() = true after CelebrationDone")
	}
}

func TestCelebrationDoneWithoutHit(t *testing.T) {
	s, _, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	if _, err := s.CelebrationDone(); !errors.Is(err, stage.ErrInvalidTransition) {
		t.Errorf("CelebrationDone() error = %v, expected ErrInvalidTransition", err)
	}
}

func TestDragUnknownObject(t *testing.T) {
	s, _, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	if _, err := s.DragEnded("cat", inFrame); !errors.Is(err, stage.ErrUnknownObject) {
		t.Errorf("DragEnded() error = %v, expected ErrUnknownObject", err)
	}
	if err := s.DragChanged("cat", inFrame); !errors.Is(err, stage.ErrUnknownObject) {
		t.Errorf("DragChanged() error = %v, expected ErrUnknownObject", err)
	}
}

func TestDragCancelledIsMiss(t *testing.T) {
	s, player, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	origin, _ := s.Stage().Object("dog")

	_ = s.DragChanged("dog", outside)
	if err := s.DragCancelled("dog"); err != nil {
		t.Fatalf("DragCancelled() error = %v", err)
	}

	o, _ := s.Stage().Object("dog")
	if o.Position != origin.Origin {
		t.Errorf("Position = %v, expected origin %v", o.Position, origin.Origin)
	}
	if len(player.prompts) != 1 || s.Stats().Misses != 1 {
		t.Errorf("cancel: prompts=%v misses=%d", player.prompts, s.Stats().Misses)
	}

	// Nothing being dragged: no-op.
	if err := s.DragCancelled(""); err != nil {
		t.Errorf("DragCancelled(\"\") error = %v", err)
	}
	if s.Stats().Misses != 1 {
		t.Error("idle cancel should not count as a miss")
	}
}

func TestDragCancelledBeforeMoveIsFree(t *testing.T) {
	s, player, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")

	for range 3 {
		if err := s.DragCancelled("dog"); err != nil {
			t.Fatalf("DragCancelled() error = %v", err)
		}
	}
	if got := s.Stats().Misses; got != 0 {
		t.Errorf("Stats().Misses = %d, expected 0", got)
	}
	if len(player.prompts) != 0 {
		t.Errorf("prompts = %v, expected none", player.prompts)
	}
}

func playLevel(t *testing.T, s *Session) Transition {
	t.Helper()
	id := s.Stage().Target()
	if outcome, err := s.DragEnded(id, inFrame); err != nil || outcome != Hit {
		t.Fatalf("DragEnded(%s) = (%v, %v)", id, outcome, err)
	}
	tr, err := s.CelebrationDone()
	if err != nil {
		t.Fatalf("CelebrationDone() error = %v", err)
	}
	return tr
}

func TestStageProgressionTerminal(t *testing.T) {
	s, player, buf := newTestSession(t, stage.PolicyTerminal, 2, "dog", "ball")

	playLevel(t, s)
	tr := playLevel(t, s)
	if !tr.Accomplished || !tr.StageChanged || tr.Stage != "ball" || tr.Level != 1 {
		t.Fatalf("transition = %+v, expected move to ball at level 1", tr)
	}
	if last := player.prompts[len(player.prompts)-1]; last != "whereis/ball" {
		t.Errorf("last prompt = %q, expected whereis/ball", last)
	}

	// Re-entered at level 1, so one more level accomplishes threshold 2.
	tr = playLevel(t, s)
	if !tr.Complete || !s.Complete() {
		t.Fatalf("transition = %+v, expected game complete", tr)
	}

	if _, err := s.DragEnded("ball", inFrame); !errors.Is(err, ErrGameComplete) {
		t.Errorf("DragEnded() after completion error = %v, expected ErrGameComplete", err)
	}
	if _, err := s.CelebrationDone(); !errors.Is(err, ErrGameComplete) {
		t.Errorf("CelebrationDone() after completion error = %v, expected ErrGameComplete", err)
	}

	st := s.Stats()
	if st.Hits != 3 || st.Levels != 3 || st.Stages != 2 || !st.Complete {
		t.Errorf("Stats() = %+v", st)
	}
	for _, want := range []string{"stage advanced", "game complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestStageProgressionCyclic(t *testing.T) {
	s, _, _ := newTestSession(t, stage.PolicyCyclic, 1, "dog", "ball")

	if tr := playLevel(t, s); tr.Stage != "ball" {
		t.Fatalf("transition = %+v, expected ball", tr)
	}
	// Threshold 1 and re-entry at level 1: the next hit accomplishes again.
	tr := playLevel(t, s)
	if !tr.StageChanged || tr.Stage != "dog" || tr.Complete {
		t.Errorf("transition = %+v, expected wrap to dog", tr)
	}
}

func TestPick(t *testing.T) {
	s, _, _ := newTestSession(t, stage.PolicyTerminal, 3, "dog")
	o, _ := s.Stage().Object("dog")

	got, ok := s.Pick(o.Bounds().Center())
	if !ok || got.ID != "dog" {
		t.Errorf("Pick(center) = (%v, %v), expected dog", got.ID, ok)
	}
	if _, ok := s.Pick(core.Point{X: -10, Y: -10}); ok {
		t.Error("Pick() outside every object should fail")
	}
}

func TestOutcomeString(t *testing.T) {
	if Hit.String() != "hit" || Miss.String() != "miss" {
		t.Errorf("Outcome strings = %q, %q", Hit, Miss)
	}
}
