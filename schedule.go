package schedules

import (
	"fmt"
)

// Schedule is a stateful iterator over a checkpointing plan. Implementations
// are not safe for concurrent use; a schedule is a deterministic lazy
// sequence advanced by Next.
type Schedule interface {
	// Next computes and returns the next action. Once the schedule is
	// exhausted, Next returns ErrIterationAfterExhausted.
	Next() (Action, error)

	// Finalize fixes max_n for online schedules. It is idempotent if called
	// with the value already set, and returns ErrFinalizeConflict for a
	// conflicting value or one behind the forward frontier.
	Finalize(n1 int64) error

	// MaxN returns the total number of forward steps, or UnknownN if not yet
	// known.
	MaxN() int64

	// UsesDiskStorage reports whether the schedule directs any data to
	// StorageDisk.
	UsesDiskStorage() bool

	// IsExhausted reports whether no more useful work remains.
	IsExhausted() bool
}

// stream serves a precomputed action list. It backs the offline schedules,
// whose planners run in full at construction.
type stream struct {
	actions  []Action
	i        int
	maxN     int64
	usesDisk bool
}

func (x *stream) Next() (Action, error) {
	if x.i >= len(x.actions) {
		return nil, ErrIterationAfterExhausted
	}
	action := x.actions[x.i]
	x.i++
	return action, nil
}

func (x *stream) Finalize(n1 int64) error {
	if n1 != x.maxN {
		return fmt.Errorf(`%w: max_n already set to %d, got %d`, ErrFinalizeConflict, x.maxN, n1)
	}
	return nil
}

func (x *stream) MaxN() int64 { return x.maxN }

func (x *stream) UsesDiskStorage() bool { return x.usesDisk }

func (x *stream) IsExhausted() bool { return x.i >= len(x.actions) }

// validateFinalize implements the shared online finalize rules, returning nil
// if the caller may set max_n to n1. The current max_n (UnknownN if unset)
// and the forward frontier are provided by the caller.
func validateFinalize(maxN, frontier, n1 int64) error {
	if maxN != UnknownN {
		if n1 != maxN {
			return fmt.Errorf(`%w: max_n already set to %d, got %d`, ErrFinalizeConflict, maxN, n1)
		}
		return nil
	}
	if n1 < 1 {
		return fmt.Errorf(`%w: finalize requires at least one step, got %d`, ErrInvalidSteps, n1)
	}
	if n1 < frontier {
		return fmt.Errorf(`%w: finalize at %d is behind the forward frontier %d`, ErrFinalizeConflict, n1, frontier)
	}
	return nil
}
