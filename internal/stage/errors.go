package stage

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the
	// stage's current state, e.g. advancing a level without a recorded hit.
	ErrInvalidTransition = errors.New("stage: invalid transition")

	// ErrSequenceExhausted is returned by Sequencer.Advance when the last stage
	// of a terminal sequence is accomplished. The game is complete.
	ErrSequenceExhausted = errors.New("stage: sequence exhausted")

	// ErrUnknownObject is returned for object IDs the stage does not own.
	ErrUnknownObject = errors.New("stage: unknown object")
)
