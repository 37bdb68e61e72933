package schedules

import (
	"fmt"
)

// Trajectory selects the advance rule used by binomial distribution
// schedules.
type Trajectory string

const (
	// TrajectoryMaximum advances the maximal number of steps compatible with
	// an optimal schedule.
	TrajectoryMaximum Trajectory = `maximum`

	// TrajectoryRevolve advances the number of steps chosen by the classical
	// revolve algorithm.
	TrajectoryRevolve Trajectory = `revolve`
)

// nAdvance returns the number of forward steps to advance before the next
// checkpoint, for n steps remaining and the given number of free snapshots,
// following the binomial growth of the classical checkpointing schedules.
func nAdvance(n int64, snapshots int, trajectory Trajectory) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf(`%w: advance requires at least one step, got %d`, ErrInvalidSteps, n)
	}
	if snapshots <= 0 {
		return 0, fmt.Errorf(`%w: advance requires at least one snapshot`, ErrInvalidBudget)
	}
	if snapshots == 1 {
		return n - 1, nil
	}
	s := int64(snapshots)
	if n <= s+1 {
		// enough snapshots to store every intermediate step
		return 1, nil
	}

	// Binomial coefficients beta(s, t) = C(s + t, s), computed incrementally
	// in t until beta(s, t-1) < n <= beta(s, t).
	t := int64(2)
	bSTm2 := int64(1)
	bSTm1 := s + 1
	bST := (s + 1) * (s + 2) / 2
	for bST < n {
		t++
		bSTm2 = bSTm1
		bSTm1 = bST
		bST = bST * (s + t) / t
	}

	bSm1Tm1 := bSTm1 * s / (s + t - 1)
	switch trajectory {
	case TrajectoryMaximum:
		if n <= bSTm1+bSm1Tm1 {
			return n - bSTm1 + bSTm2, nil
		}
		return bSTm1, nil
	case TrajectoryRevolve:
		bSm2Tm1 := bSm1Tm1 * (s - 1) / (s + t - 2)
		if n <= bSTm1+bSm2Tm1 {
			return bSTm2, nil
		}
		if n < bSTm1+bSm1Tm1+bSm2Tm1 {
			return n - bSm1Tm1 - bSm2Tm1, nil
		}
		return bSTm1, nil
	default:
		return 0, fmt.Errorf(`%w: unknown trajectory %q`, ErrInternalInvariant, trajectory)
	}
}

// snapshot records a live checkpoint, for the binomial reverse drivers.
type snapshot struct {
	n       int64
	storage StorageKind
	// keep marks a checkpoint that must survive the sweep, e.g. a two-level
	// period anchor serving later adjoint sweeps
	keep bool
}

// snapshotStack tracks live checkpoints, most recent last, with per-level
// occupancy counts.
type snapshotStack struct {
	s    []snapshot
	ram  int
	disk int
}

func (x *snapshotStack) push(n int64, storage StorageKind, keep bool) {
	x.s = append(x.s, snapshot{n: n, storage: storage, keep: keep})
	switch storage {
	case StorageRAM:
		x.ram++
	case StorageDisk:
		x.disk++
	}
}

func (x *snapshotStack) pop() snapshot {
	top := x.s[len(x.s)-1]
	x.s = x.s[:len(x.s)-1]
	switch top.storage {
	case StorageRAM:
		x.ram--
	case StorageDisk:
		x.disk--
	}
	return top
}

func (x *snapshotStack) peek() snapshot { return x.s[len(x.s)-1] }

func (x *snapshotStack) len() int { return len(x.s) }

// binomialDriver emits the reverse-sweep actions shared by the multistage and
// two-level schedules, consuming and replenishing a snapshot stack according
// to the binomial advance rule.
type binomialDriver struct {
	stack      snapshotStack
	total      int // snapshot budget governing new writes
	reserved   int // stack entries not counted against total (block anchors)
	trajectory Trajectory
	assign     func() StorageKind // storage for newly written snapshots
	emit       func(Action)
}

func (x *binomialDriver) free() int {
	return x.total - (x.stack.len() - x.reserved)
}

// reverseRange adjoins steps e-1 down to a, restoring from the snapshots on
// the stack, all of which lie in [a, e). Snapshots flagged keep are restored
// with Copy on their final use and left on the stack; all others are popped
// with Move. The working buffer's position on entry is irrelevant, as every
// backward step restores or recomputes its own state.
func (x *binomialDriver) reverseRange(a, e int64) error {
	for r := e; r > a; {
		cp := x.stack.peek()
		if cp.n == r-1 {
			if cp.keep {
				x.emit(Copy{N: cp.n, From: cp.storage, To: StorageWork})
			} else {
				x.stack.pop()
				x.emit(Move{N: cp.n, From: cp.storage, To: StorageWork})
			}
		} else {
			x.emit(Copy{N: cp.n, From: cp.storage, To: StorageWork})
			if err := x.recompute(cp.n, r); err != nil {
				return err
			}
		}
		x.emit(Forward{N0: r - 1, N1: r, WriteAdjDeps: true, Storage: StorageWork})
		x.emit(Reverse{N1: r, N0: r - 1, ClearAdjDeps: true})
		r--
	}
	return nil
}

// recompute advances the working buffer from the just-restored snapshot
// position cp to r-1, writing intermediate snapshots while budget remains.
func (x *binomialDriver) recompute(cp, r int64) error {
	for n0 := cp; n0 < r-1; {
		free := x.free()
		var n1 int64
		if n0 == cp {
			// the restored snapshot covers this position; no write
			adv, err := nAdvance(r-n0, free+1, x.trajectory)
			if err != nil {
				return err
			}
			n1 = min(n0+adv, r-1)
			x.emit(Forward{N0: n0, N1: n1, Storage: StorageWork})
		} else if free > 0 {
			adv, err := nAdvance(r-n0, free, x.trajectory)
			if err != nil {
				return err
			}
			n1 = min(n0+adv, r-1)
			storage := x.assign()
			x.stack.push(n0, storage, false)
			x.emit(Forward{N0: n0, N1: n1, WriteICs: true, Storage: storage})
		} else {
			n1 = r - 1
			x.emit(Forward{N0: n0, N1: n1, Storage: StorageWork})
		}
		n0 = n1
	}
	return nil
}
