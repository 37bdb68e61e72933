package schedules

import (
	"fmt"
)

type (
	// MultistageConfig models optional configuration, for NewMultistage.
	MultistageConfig struct {
		// Trajectory selects the binomial advance rule.
		// **Defaults to TrajectoryMaximum, if empty, or MultistageConfig is
		// nil.**
		Trajectory Trajectory
	}

	// MultistageSchedule distributes snapshots across two storage levels
	// using the classical binomial formula, filling fast memory first and
	// spilling the remainder to disk. The full plan is computed at
	// construction.
	MultistageSchedule struct {
		stream
		snapsInRAM  int
		snapsOnDisk int
	}
)

var (
	// compile time assertions

	_ Schedule = (*MultistageSchedule)(nil)
)

// NewMultistage creates a schedule distributing snapsInRAM + snapsOnDisk
// snapshots across [0, maxN) using the classical binomial formula. Memory
// slots fill from the earliest steps; disk slots take the remainder. The
// provided config may be nil.
func NewMultistage(maxN int64, snapsInRAM, snapsOnDisk int, config *MultistageConfig) (*MultistageSchedule, error) {
	if maxN < 1 {
		return nil, fmt.Errorf(`%w: max_n must be at least 1, got %d`, ErrInvalidSteps, maxN)
	}
	if snapsInRAM < 0 || snapsOnDisk < 0 {
		return nil, fmt.Errorf(`%w: negative snapshot count`, ErrInvalidBudget)
	}
	if maxN > 1 && snapsInRAM+snapsOnDisk < 1 {
		return nil, fmt.Errorf(`%w: %d steps require at least one snapshot`, ErrInvalidBudget, maxN)
	}

	trajectory := TrajectoryMaximum
	if config != nil && config.Trajectory != `` {
		trajectory = config.Trajectory
	}

	schedule := MultistageSchedule{
		snapsInRAM:  snapsInRAM,
		snapsOnDisk: snapsOnDisk,
	}
	schedule.maxN = maxN

	driver := binomialDriver{
		total:      snapsInRAM + snapsOnDisk,
		trajectory: trajectory,
		emit: func(action Action) {
			schedule.actions = append(schedule.actions, action)
		},
	}
	driver.assign = func() StorageKind {
		if driver.stack.ram < snapsInRAM {
			return StorageRAM
		}
		schedule.usesDisk = true
		return StorageDisk
	}

	// forward sweep, writing snapshots per the binomial advance
	for n := int64(0); n < maxN-1; {
		adv, err := nAdvance(maxN-n, driver.free(), trajectory)
		if err != nil {
			return nil, err
		}
		storage := driver.assign()
		driver.stack.push(n, storage, false)
		driver.emit(Forward{N0: n, N1: n + adv, WriteICs: true, Storage: storage})
		n += adv
	}
	driver.emit(Forward{N0: maxN - 1, N1: maxN, WriteAdjDeps: true, Storage: StorageWork})
	driver.emit(EndForward{})
	driver.emit(Reverse{N1: maxN, N0: maxN - 1, ClearAdjDeps: true})

	if err := driver.reverseRange(0, maxN-1); err != nil {
		return nil, err
	}
	driver.emit(EndReverse{})

	if driver.stack.len() != 0 {
		return nil, fmt.Errorf(`%w: %d snapshots left over`, ErrInternalInvariant, driver.stack.len())
	}
	return &schedule, nil
}

// SnapsInRAM returns the memory snapshot budget.
func (x *MultistageSchedule) SnapsInRAM() int { return x.snapsInRAM }

// SnapsOnDisk returns the disk snapshot budget.
func (x *MultistageSchedule) SnapsOnDisk() int { return x.snapsOnDisk }
