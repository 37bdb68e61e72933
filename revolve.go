package schedules

import (
	"fmt"

	"github.com/firedrakeproject/checkpoint-schedules/hrevolve"
)

type (
	// CostConfig models the optional recomputation cost parameters of the
	// revolve family of schedules.
	CostConfig struct {
		// ForwardCost is the cost of one forward step.
		// **Defaults to 1, if 0, or CostConfig is nil.**
		ForwardCost int64

		// BackwardCost is the cost of one backward step.
		// **Defaults to 1, if 0, or CostConfig is nil.**
		BackwardCost int64

		// DiskWriteCost is the cost of writing one checkpoint to disk.
		// **Defaults to 0.** Memory writes are free by convention.
		DiskWriteCost int64

		// DiskReadCost is the cost of reading one checkpoint from disk.
		// **Defaults to 0.** Memory reads are free by convention.
		DiskReadCost int64
	}

	// RevolveSchedule is the classical binomial checkpointing schedule over
	// memory alone. The full plan is computed at construction.
	RevolveSchedule struct {
		stream
		snapsInRAM int
	}

	// DiskRevolveSchedule extends revolve with unbounded disk storage. The
	// full plan is computed at construction.
	DiskRevolveSchedule struct {
		stream
		snapsInRAM int
	}

	// PeriodicDiskRevolveSchedule anchors a disk checkpoint at a fixed
	// optimal period, each period block solved by a disk-anchored revolve.
	// The full plan is computed at construction.
	PeriodicDiskRevolveSchedule struct {
		stream
		snapsInRAM int
		period     int64
	}

	// HRevolveSchedule is the optimal schedule over bounded memory and
	// bounded disk. The full plan is computed at construction.
	HRevolveSchedule struct {
		stream
		snapsInRAM  int
		snapsOnDisk int
	}
)

var (
	// compile time assertions

	_ Schedule = (*RevolveSchedule)(nil)
	_ Schedule = (*DiskRevolveSchedule)(nil)
	_ Schedule = (*PeriodicDiskRevolveSchedule)(nil)
	_ Schedule = (*HRevolveSchedule)(nil)
)

func (x *CostConfig) params() hrevolve.CostParams {
	if x == nil {
		return hrevolve.CostParams{}
	}
	return hrevolve.CostParams{
		UF: x.ForwardCost,
		UB: x.BackwardCost,
		WD: x.DiskWriteCost,
		RD: x.DiskReadCost,
	}
}

func storageKind(level hrevolve.Level) StorageKind {
	switch level {
	case hrevolve.LevelMemory:
		return StorageRAM
	case hrevolve.LevelDisk:
		return StorageDisk
	default:
		return StorageWork
	}
}

// compileSequence translates a low-level operation sequence into the public
// action stream, coalescing each pending checkpoint or adjoint-dependency
// write into the forward action covering it, and read-then-discard pairs
// into moves.
func compileSequence(seq hrevolve.Sequence, maxN int64) (actions []Action, usesDisk bool, _ error) {
	var (
		pendingWrite    *hrevolve.Op
		pendingAdjDeps  bool
		endForward      bool
		endReverse      bool
		reverseFrontier = maxN
	)
	for i := 0; i < len(seq); i++ {
		op := seq[i]
		if op.Level == hrevolve.LevelDisk {
			usesDisk = true
		}
		switch op.Kind {
		case hrevolve.OpWrite:
			if pendingWrite != nil {
				return nil, false, fmt.Errorf(`%w: consecutive checkpoint writes at op %d`, ErrInternalInvariant, i)
			}
			pendingWrite = &seq[i]
		case hrevolve.OpWriteForward:
			pendingAdjDeps = true
		case hrevolve.OpForward1, hrevolve.OpForward:
			forward := Forward{
				N0:           int64(op.T0),
				N1:           int64(op.T1),
				WriteAdjDeps: pendingAdjDeps,
				Storage:      StorageWork,
			}
			if pendingWrite != nil {
				if pendingWrite.I != op.T0 {
					return nil, false, fmt.Errorf(`%w: checkpoint write at %d precedes forward from %d`, ErrInternalInvariant, pendingWrite.I, op.T0)
				}
				if pendingAdjDeps {
					return nil, false, fmt.Errorf(`%w: checkpoint and adjoint-dependency writes on one advance`, ErrInternalInvariant)
				}
				forward.WriteICs = true
				forward.Storage = storageKind(pendingWrite.Level)
			}
			pendingWrite, pendingAdjDeps = nil, false
			actions = append(actions, forward)
			if forward.N1 == maxN && !endForward {
				endForward = true
				actions = append(actions, EndForward{})
			}
		case hrevolve.OpBackward:
			if int64(op.T1) != reverseFrontier {
				return nil, false, fmt.Errorf(`%w: backward step %d at reverse frontier %d`, ErrInternalInvariant, op.T1, reverseFrontier)
			}
			reverseFrontier--
			actions = append(actions, Reverse{N1: int64(op.T1), N0: int64(op.T0), ClearAdjDeps: true})
			if reverseFrontier == 0 && !endReverse {
				endReverse = true
				actions = append(actions, EndReverse{})
			}
		case hrevolve.OpRead:
			if i+1 < len(seq) && seq[i+1].Kind == hrevolve.OpDiscard && seq[i+1].Level == op.Level && seq[i+1].I == op.I {
				i++
				actions = append(actions, Move{N: int64(op.I), From: storageKind(op.Level), To: StorageWork})
			} else {
				actions = append(actions, Copy{N: int64(op.I), From: storageKind(op.Level), To: StorageWork})
			}
		case hrevolve.OpDiscard, hrevolve.OpDiscardForward:
			// bookkeeping only
		default:
			return nil, false, fmt.Errorf(`%w: unexpected operation %s at %d`, ErrInternalInvariant, op, i)
		}
	}
	if !endForward || !endReverse || reverseFrontier != 0 {
		return nil, false, fmt.Errorf(`%w: sequence did not complete both sweeps`, ErrInternalInvariant)
	}
	return actions, usesDisk, nil
}

// NewRevolve creates the classical binomial checkpointing schedule for maxN
// steps with snapsInRAM memory slots. The provided config may be nil.
func NewRevolve(maxN int64, snapsInRAM int, config *CostConfig) (*RevolveSchedule, error) {
	l, err := revolveInstance(maxN, snapsInRAM)
	if err != nil {
		return nil, err
	}
	seq, err := hrevolve.Revolve(l, min(snapsInRAM, max(l, 1)), config.params())
	if err != nil {
		return nil, fmt.Errorf(`%w: %v`, ErrInvalidBudget, err)
	}
	schedule := RevolveSchedule{snapsInRAM: snapsInRAM}
	if err := schedule.compile(seq, maxN); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// NewDiskRevolve creates the unbounded-disk revolve schedule for maxN steps
// with snapsInRAM memory slots. The provided config may be nil.
func NewDiskRevolve(maxN int64, snapsInRAM int, config *CostConfig) (*DiskRevolveSchedule, error) {
	l, err := diskInstance(maxN, snapsInRAM)
	if err != nil {
		return nil, err
	}
	seq, err := hrevolve.DiskRevolve(l, min(snapsInRAM, max(l, 1)), config.params())
	if err != nil {
		return nil, fmt.Errorf(`%w: %v`, ErrInvalidBudget, err)
	}
	schedule := DiskRevolveSchedule{snapsInRAM: snapsInRAM}
	if err := schedule.compile(seq, maxN); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// NewPeriodicDiskRevolve creates the periodic disk revolve schedule for maxN
// steps with snapsInRAM memory slots. The provided config may be nil.
func NewPeriodicDiskRevolve(maxN int64, snapsInRAM int, config *CostConfig) (*PeriodicDiskRevolveSchedule, error) {
	l, err := diskInstance(maxN, snapsInRAM)
	if err != nil {
		return nil, err
	}
	seq, period, err := hrevolve.PeriodicDiskRevolve(l, min(snapsInRAM, max(l, 1)), config.params())
	if err != nil {
		return nil, fmt.Errorf(`%w: %v`, ErrInvalidBudget, err)
	}
	schedule := PeriodicDiskRevolveSchedule{snapsInRAM: snapsInRAM, period: int64(period)}
	if err := schedule.compile(seq, maxN); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// NewHRevolve creates the bounded-memory, bounded-disk h-revolve schedule
// for maxN steps. The provided config may be nil.
func NewHRevolve(maxN int64, snapsInRAM, snapsOnDisk int, config *CostConfig) (*HRevolveSchedule, error) {
	if snapsInRAM < 0 || snapsOnDisk < 0 {
		return nil, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	l, err := revolveInstance(maxN, snapsInRAM+snapsOnDisk)
	if err != nil {
		return nil, err
	}
	seq, err := hrevolve.HRevolve(l, min(snapsInRAM, max(l, 1)), min(snapsOnDisk, max(l, 1)), config.params())
	if err != nil {
		return nil, fmt.Errorf(`%w: %v`, ErrInvalidBudget, err)
	}
	schedule := HRevolveSchedule{snapsInRAM: snapsInRAM, snapsOnDisk: snapsOnDisk}
	if err := schedule.compile(seq, maxN); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func revolveInstance(maxN int64, snaps int) (int, error) {
	if maxN < 1 {
		return 0, fmt.Errorf(`%w: max_n must be at least 1, got %d`, ErrInvalidSteps, maxN)
	}
	if snaps < 0 {
		return 0, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	if maxN > 1 && snaps < 1 {
		return 0, fmt.Errorf(`%w: %d steps require at least one snapshot`, ErrInvalidBudget, maxN)
	}
	return int(maxN - 1), nil
}

// diskInstance validates the parameters of the unbounded-disk schedules,
// which remain feasible with no memory slots at all.
func diskInstance(maxN int64, snaps int) (int, error) {
	if maxN < 1 {
		return 0, fmt.Errorf(`%w: max_n must be at least 1, got %d`, ErrInvalidSteps, maxN)
	}
	if snaps < 0 {
		return 0, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	return int(maxN - 1), nil
}

func (x *stream) compile(seq hrevolve.Sequence, maxN int64) error {
	actions, usesDisk, err := compileSequence(seq, maxN)
	if err != nil {
		return err
	}
	x.actions = actions
	x.usesDisk = usesDisk
	x.maxN = maxN
	return nil
}

// SnapsInRAM returns the memory snapshot budget.
func (x *RevolveSchedule) SnapsInRAM() int { return x.snapsInRAM }

// SnapsInRAM returns the memory snapshot budget.
func (x *DiskRevolveSchedule) SnapsInRAM() int { return x.snapsInRAM }

// SnapsInRAM returns the memory snapshot budget.
func (x *PeriodicDiskRevolveSchedule) SnapsInRAM() int { return x.snapsInRAM }

// Period returns the chosen disk checkpoint period.
func (x *PeriodicDiskRevolveSchedule) Period() int64 { return x.period }

// SnapsInRAM returns the memory snapshot budget.
func (x *HRevolveSchedule) SnapsInRAM() int { return x.snapsInRAM }

// SnapsOnDisk returns the disk snapshot budget.
func (x *HRevolveSchedule) SnapsOnDisk() int { return x.snapsOnDisk }
