package schedules

import (
	"errors"
)

var (
	// ErrInvalidBudget indicates a storage budget too small to solve the
	// requested instance with the chosen algorithm.
	ErrInvalidBudget = errors.New(`schedules: invalid storage budget`)

	// ErrInvalidSteps indicates a non-positive step count where one is
	// required.
	ErrInvalidSteps = errors.New(`schedules: invalid number of steps`)

	// ErrFinalizeConflict indicates a Finalize call with a step count that
	// conflicts with an already-set max_n, or that is behind the forward
	// frontier.
	ErrFinalizeConflict = errors.New(`schedules: conflicting finalize`)

	// ErrIterationAfterExhausted indicates a Next call on an exhausted
	// schedule that does not support re-entry.
	ErrIterationAfterExhausted = errors.New(`schedules: iteration after exhausted`)

	// ErrInternalInvariant indicates a broken invariant in a planner or
	// adapter. It should be unreachable, and indicates a bug.
	ErrInternalInvariant = errors.New(`schedules: internal invariant violated`)
)
