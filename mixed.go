package schedules

import (
	"fmt"
	"math"
)

type (
	// MixedConfig models optional configuration, for NewMixed.
	MixedConfig struct {
		// Storage selects the storage level holding the shared budget. Must
		// be StorageRAM or StorageDisk.
		// **Defaults to StorageDisk, if zero, or MixedConfig is nil.**
		Storage StorageKind
	}

	// MixedSchedule shares a single storage budget between restart data and
	// adjoint-dependency data, assuming the two have equal size. Each unit of
	// the budget holds either the restart state of a step or the
	// adjoint-dependency data of a step, and the plan decides which at each
	// point, minimizing recomputation. The full plan is computed at
	// construction.
	MixedSchedule struct {
		stream
		snaps   int
		storage StorageKind
	}

	// mixedPlanner owns the dynamic programs over (steps, free units) and
	// their emission. The fresh tables cover blocks whose initial condition
	// is live in the working buffer; the anchored tables cover blocks whose
	// initial condition is held in a unit.
	mixedPlanner struct {
		maxN    int64
		storage StorageKind
		// costFresh[n][s] and decFresh[n][s]: decision 0 stores the first
		// step's adjoint-dependency data, j >= 1 stores the restart state
		// and advances j
		costFresh [][]int64
		decFresh  [][]int64
		// costAnchored[n][s] and decAnchored[n][s]: decision 0 relocates the
		// anchor out of the unit (final use), j >= 1 duplicates it and
		// advances j
		costAnchored [][]int64
		decAnchored  [][]int64
		actions      []Action
		endForward   bool
	}
)

var (
	// compile time assertions

	_ Schedule = (*MixedSchedule)(nil)
)

// mixedInf is the infeasible-cost sentinel, kept far from overflow under
// addition.
const mixedInf = math.MaxInt64 / 4

func mixedAdd(a, b int64) int64 {
	if c := a + b; c < mixedInf {
		return c
	}
	return mixedInf
}

// NewMixed creates a schedule sharing snaps storage units between restart
// and adjoint-dependency data across maxN steps. The provided config may be
// nil.
func NewMixed(maxN int64, snaps int, config *MixedConfig) (*MixedSchedule, error) {
	if maxN < 1 {
		return nil, fmt.Errorf(`%w: max_n must be at least 1, got %d`, ErrInvalidSteps, maxN)
	}
	if snaps < 0 {
		return nil, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	if maxN > 1 && snaps < 1 {
		return nil, fmt.Errorf(`%w: %d steps require at least one storage unit`, ErrInvalidBudget, maxN)
	}

	planner := mixedPlanner{maxN: maxN, storage: StorageDisk}
	if config != nil && config.Storage != 0 {
		planner.storage = config.Storage
	}

	planner.solve(snaps)
	if planner.costFresh[maxN][snaps] >= mixedInf {
		return nil, fmt.Errorf(`%w: no feasible plan for %d steps with %d units`, ErrInvalidBudget, maxN, snaps)
	}
	planner.emitFresh(0, maxN, snaps)
	planner.actions = append(planner.actions, EndReverse{})

	schedule := MixedSchedule{snaps: snaps, storage: planner.storage}
	schedule.maxN = maxN
	schedule.usesDisk = planner.storage == StorageDisk
	schedule.actions = planner.actions
	return &schedule, nil
}

// solve fills the cost and decision tables bottom-up in n. The anchored
// relocate decision consults fresh costs at one more free unit, so the unit
// axis extends one past the budget.
func (x *mixedPlanner) solve(snaps int) {
	const uf, ub = 1, 1 // unit forward and backward step costs

	x.costFresh = make([][]int64, x.maxN+1)
	x.decFresh = make([][]int64, x.maxN+1)
	x.costAnchored = make([][]int64, x.maxN+1)
	x.decAnchored = make([][]int64, x.maxN+1)
	for n := int64(0); n <= x.maxN; n++ {
		x.costFresh[n] = make([]int64, snaps+2)
		x.decFresh[n] = make([]int64, snaps+2)
		x.costAnchored[n] = make([]int64, snaps+2)
		x.decAnchored[n] = make([]int64, snaps+2)
	}

	for s := 0; s <= snaps+1; s++ {
		x.costFresh[1][s] = uf + ub
		x.costAnchored[1][s] = x.costFresh[1][s]
		x.decAnchored[1][s] = 0
	}

	for n := int64(2); n <= x.maxN; n++ {
		for s := 0; s <= snaps+1; s++ {
			// fresh: store the restart state of step 0 and advance j, or
			// store the adjoint-dependency data of step 0 and advance 1
			cost, dec := int64(mixedInf), int64(-1)
			if s >= 1 {
				for j := int64(1); j < n; j++ {
					if c := mixedAdd(j*uf, mixedAdd(x.costFresh[n-j][s-1], x.costAnchored[j][s-1])); c < cost {
						cost, dec = c, j
					}
				}
				if c := mixedAdd(uf+ub, x.costFresh[n-1][s-1]); c < cost {
					cost, dec = c, 0
				}
			}
			x.costFresh[n][s] = cost
			x.decFresh[n][s] = dec
		}
		for s := 0; s <= snaps+1; s++ {
			// anchored: duplicate the anchor and advance j, or relocate it
			// out of the unit on its final use
			cost, dec := int64(mixedInf), int64(-1)
			for j := int64(1); j < n; j++ {
				if c := mixedAdd(j*uf, mixedAdd(x.costFresh[n-j][s], x.costAnchored[j][s])); c < cost {
					cost, dec = c, j
				}
			}
			if s+1 <= snaps+1 {
				if c := x.costFresh[n][s+1]; c < cost {
					cost, dec = c, 0
				}
			}
			x.costAnchored[n][s] = cost
			x.decAnchored[n][s] = dec
		}
	}
}

func (x *mixedPlanner) emit(action Action) {
	x.actions = append(x.actions, action)
	if forward, ok := action.(Forward); ok && forward.N1 == x.maxN && !x.endForward {
		x.endForward = true
		x.actions = append(x.actions, EndForward{})
	}
}

func (x *mixedPlanner) emitFresh(off, n int64, s int) {
	if n == 1 {
		x.emit(Forward{N0: off, N1: off + 1, WriteAdjDeps: true, Storage: StorageWork})
		x.emit(Reverse{N1: off + 1, N0: off, ClearAdjDeps: true})
		return
	}
	if j := x.decFresh[n][s]; j >= 1 {
		x.emit(Forward{N0: off, N1: off + j, WriteICs: true, Storage: x.storage})
		x.emitFresh(off+j, n-j, s-1)
		x.emitAnchored(off, j, s-1)
	} else {
		x.emit(Forward{N0: off, N1: off + 1, WriteAdjDeps: true, Storage: x.storage})
		x.emitFresh(off+1, n-1, s-1)
		// adjoint-dependency data is keyed by the end of the advance that
		// produced it
		x.emit(Move{N: off + 1, From: x.storage, To: StorageWork})
		x.emit(Reverse{N1: off + 1, N0: off, ClearAdjDeps: true})
	}
}

func (x *mixedPlanner) emitAnchored(off, n int64, s int) {
	if j := x.decAnchored[n][s]; j >= 1 {
		x.emit(Copy{N: off, From: x.storage, To: StorageWork})
		x.emit(Forward{N0: off, N1: off + j, Storage: StorageWork})
		x.emitFresh(off+j, n-j, s)
		x.emitAnchored(off, j, s)
	} else {
		x.emit(Move{N: off, From: x.storage, To: StorageWork})
		x.emitFresh(off, n, s+1)
	}
}

// Snaps returns the shared storage budget.
func (x *MixedSchedule) Snaps() int { return x.snaps }

// Storage returns the storage level holding the shared budget.
func (x *MixedSchedule) Storage() StorageKind { return x.storage }
