package schedules

import (
	"fmt"
)

type (
	// TwoLevelConfig models optional configuration, for NewTwoLevel.
	TwoLevelConfig struct {
		// BinomialStorage selects the storage level used by the inner
		// binomial sub-schedules during recomputation. Must be StorageRAM or
		// StorageDisk.
		// **Defaults to StorageDisk, if zero, or TwoLevelConfig is nil.**
		BinomialStorage StorageKind
	}

	// TwoLevelSchedule writes periodic disk checkpoints on the forward sweep,
	// then recomputes each period block on the reverse sweep using an inner
	// binomial sub-schedule. It runs online, and the periodic checkpoints
	// survive each sweep, so further adjoint sweeps may follow EndReverse.
	TwoLevelSchedule struct {
		period            int64
		binomialSnapshots int
		binomialStorage   StorageKind
		maxN              int64
		k                 int64 // periods emitted on the forward sweep
		queue             []Action
		qi                int
		forwardDone       bool
	}
)

var (
	// compile time assertions

	_ Schedule = (*TwoLevelSchedule)(nil)
)

// NewTwoLevel creates a schedule writing a disk checkpoint every period
// steps on the forward sweep, with binomialSnapshots of inner storage
// available to each period block on the reverse sweep. The provided config
// may be nil.
func NewTwoLevel(period int64, binomialSnapshots int, config *TwoLevelConfig) (*TwoLevelSchedule, error) {
	if period < 1 {
		return nil, fmt.Errorf(`%w: period must be at least 1, got %d`, ErrInvalidSteps, period)
	}
	if binomialSnapshots < 0 {
		return nil, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	schedule := TwoLevelSchedule{
		period:            period,
		binomialSnapshots: binomialSnapshots,
		binomialStorage:   StorageDisk,
		maxN:              UnknownN,
	}
	if config != nil && config.BinomialStorage != 0 {
		schedule.binomialStorage = config.BinomialStorage
	}
	return &schedule, nil
}

func (x *TwoLevelSchedule) Next() (Action, error) {
	if x.maxN == UnknownN {
		n0 := x.k * x.period
		x.k++
		return Forward{N0: n0, N1: n0 + x.period, WriteICs: true, Storage: StorageDisk}, nil
	}
	if x.qi >= len(x.queue) {
		// next adjoint sweep; the periodic checkpoints survive
		x.queue = x.queue[:0]
		x.qi = 0
		if err := x.appendReverseSweep(); err != nil {
			return nil, err
		}
	}
	action := x.queue[x.qi]
	x.qi++
	return action, nil
}

func (x *TwoLevelSchedule) appendReverseSweep() error {
	if !x.forwardDone {
		x.forwardDone = true
		x.queue = append(x.queue, EndForward{})
	}
	for k := (x.maxN - 1) / x.period; k >= 0; k-- {
		driver := binomialDriver{
			total:    x.binomialSnapshots,
			reserved: 1,
			emit: func(action Action) {
				x.queue = append(x.queue, action)
			},
		}
		driver.trajectory = TrajectoryMaximum
		driver.assign = func() StorageKind { return x.binomialStorage }
		driver.stack.push(k*x.period, StorageDisk, true)
		if err := driver.reverseRange(k*x.period, min((k+1)*x.period, x.maxN)); err != nil {
			return err
		}
	}
	x.queue = append(x.queue, EndReverse{})
	return nil
}

func (x *TwoLevelSchedule) Finalize(n1 int64) error {
	if x.maxN != UnknownN {
		if n1 != x.maxN {
			return fmt.Errorf(`%w: max_n already set to %d, got %d`, ErrFinalizeConflict, x.maxN, n1)
		}
		return nil
	}
	if n1 < 1 {
		return fmt.Errorf(`%w: finalize requires at least one step, got %d`, ErrInvalidSteps, n1)
	}
	if n1 <= (x.k-1)*x.period {
		return fmt.Errorf(`%w: finalize at %d is behind the forward frontier %d`, ErrFinalizeConflict, n1, (x.k-1)*x.period+1)
	}
	if n1 > x.k*x.period {
		return fmt.Errorf(`%w: finalize at %d is beyond the emitted forward actions (%d steps)`, ErrFinalizeConflict, n1, x.k*x.period)
	}
	x.maxN = n1
	return nil
}

func (x *TwoLevelSchedule) MaxN() int64 { return x.maxN }

func (x *TwoLevelSchedule) UsesDiskStorage() bool { return true }

// IsExhausted always reports false; the periodic disk checkpoints are
// retained, so a further adjoint sweep can begin after each EndReverse.
func (x *TwoLevelSchedule) IsExhausted() bool { return false }
