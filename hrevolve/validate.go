package hrevolve

import (
	"fmt"
)

// Validate checks the structural invariants of a sequence: every read is
// preceded by a matching write with no intervening discard, discards release
// live data only, forward advances are well-formed, backward steps consume
// adjoint-dependency data written for them, and the number of live
// checkpoints never exceeds cm at LevelMemory or cd at LevelDisk. A negative
// budget is unbounded.
func Validate(seq Sequence, cm, cd int) error {
	type key struct {
		level Level
		i     int
	}
	stored := make(map[key]struct{})
	storedFwd := make(map[key]struct{})
	var memory, disk int
	for i, op := range seq {
		switch op.Kind {
		case OpForward1, OpForward:
			if op.T1 <= op.T0 {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): empty forward advance`, i, op)
			}
		case OpBackward:
			if op.T1 != op.T0+1 {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): backward must cover one step`, i, op)
			}
			if _, ok := storedFwd[key{LevelWork, op.T1}]; !ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): no adjoint-dependency data for step %d`, i, op, op.T1)
			}
		case OpWrite:
			k := key{op.Level, op.I}
			if _, ok := stored[k]; ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): duplicate write`, i, op)
			}
			stored[k] = struct{}{}
			switch op.Level {
			case LevelMemory:
				if memory++; cm >= 0 && memory > cm {
					return fmt.Errorf(`hrevolve: validate: op %d (%s): memory budget %d exceeded`, i, op, cm)
				}
			case LevelDisk:
				if disk++; cd >= 0 && disk > cd {
					return fmt.Errorf(`hrevolve: validate: op %d (%s): disk budget %d exceeded`, i, op, cd)
				}
			}
		case OpRead:
			if _, ok := stored[key{op.Level, op.I}]; !ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): read of data not stored`, i, op)
			}
		case OpDiscard:
			k := key{op.Level, op.I}
			if _, ok := stored[k]; !ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): discard of data not stored`, i, op)
			}
			delete(stored, k)
			switch op.Level {
			case LevelMemory:
				memory--
			case LevelDisk:
				disk--
			}
		case OpWriteForward:
			k := key{op.Level, op.I}
			if _, ok := storedFwd[k]; ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): duplicate adjoint-dependency write`, i, op)
			}
			storedFwd[k] = struct{}{}
		case OpReadForward:
			if _, ok := storedFwd[key{op.Level, op.I}]; !ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): read of adjoint-dependency data not stored`, i, op)
			}
		case OpDiscardForward:
			k := key{op.Level, op.I}
			if _, ok := storedFwd[k]; !ok {
				return fmt.Errorf(`hrevolve: validate: op %d (%s): discard of adjoint-dependency data not stored`, i, op)
			}
			delete(storedFwd, k)
		default:
			return fmt.Errorf(`hrevolve: validate: op %d: unknown kind %d`, i, op.Kind)
		}
	}
	if len(stored) != 0 {
		return fmt.Errorf(`hrevolve: validate: %d checkpoints never discarded`, len(stored))
	}
	if len(storedFwd) != 0 {
		return fmt.Errorf(`hrevolve: validate: %d adjoint-dependency writes never discarded`, len(storedFwd))
	}
	return nil
}
