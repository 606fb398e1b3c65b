package stage

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides what happens after the last stage is accomplished.
type Policy int

const (
	// PolicyTerminal ends the game after the last stage.
	PolicyTerminal Policy = iota
	// PolicyCyclic wraps back to the first stage.
	PolicyCyclic
)

func (p Policy) String() string {
	switch p {
	case PolicyTerminal:
		return "terminal"
	case PolicyCyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "terminal" or "cyclic". An empty string selects terminal.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "terminal":
		return PolicyTerminal, nil
	case "cyclic":
		return PolicyCyclic, nil
	default:
		return PolicyTerminal, fmt.Errorf("stage: unknown policy %q (want terminal or cyclic)", s)
	}
}

const noNext = -1

// Sequencer orders stages and promotes the player once a stage is accomplished.
type Sequencer struct {
	stages   []*Stage
	next     []int
	current  int
	policy   Policy
	complete bool
}

// NewSequencer creates a sequencer over stages. The first stage is active.
func NewSequencer(policy Policy, stages ...*Stage) (*Sequencer, error) {
	if len(stages) == 0 {
		return nil, errors.New("stage: sequencer needs at least one stage")
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("stage: sequencer stage %d is nil", i)
		}
	}
	q := &Sequencer{
		stages: append([]*Stage(nil), stages...),
		policy: policy,
	}
	q.Link()
	return q, nil
}

// Link rebuilds the next-stage table from the current stage list.
// Calling it repeatedly yields the same table.
func (q *Sequencer) Link() {
	q.next = make([]int, len(q.stages))
	for i := range q.stages {
		q.next[i] = i + 1
	}
	last := len(q.stages) - 1
	if q.policy == PolicyCyclic {
		q.next[last] = 0
	} else {
		q.next[last] = noNext
	}
}

// Append adds a stage to the end of the sequence and relinks. A completed
// terminal sequence becomes playable again if its last stage is still
// accomplished.
func (q *Sequencer) Append(s *Stage) error {
	if s == nil {
		return errors.New("stage: cannot append nil stage")
	}
	q.stages = append(q.stages, s)
	q.complete = false
	q.Link()
	return nil
}

// Advance moves to the next stage if the current one is accomplished.
//
// It returns true when the active stage changed. With the terminal policy
// the last stage has no successor: Advance then reports ErrSequenceExhausted
// and Complete becomes true.
func (q *Sequencer) Advance() (bool, error) {
	cur := q.stages[q.current]
	if !cur.IsAccomplished() {
		return false, nil
	}

	n := q.next[q.current]
	if n == noNext {
		q.complete = true
		return false, ErrSequenceExhausted
	}

	cur.consume()
	q.current = n
	q.stages[n].enter()
	return true, nil
}

// Current returns the active stage.
func (q *Sequencer) Current() *Stage {
	return q.stages[q.current]
}

// Index returns the position of the active stage.
func (q *Sequencer) Index() int {
	return q.current
}

// Len returns the number of stages.
func (q *Sequencer) Len() int {
	return len(q.stages)
}

// Stages returns the stages in order.
func (q *Sequencer) Stages() []*Stage {
	return append([]*Stage(nil), q.stages...)
}

// Policy returns the end-of-sequence policy.
func (q *Sequencer) Policy() Policy {
	return q.policy
}

// Complete reports whether a terminal sequence has run out of stages.
func (q *Sequencer) Complete() bool {
	return q.complete
}
