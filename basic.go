package schedules

import (
	"fmt"
)

type (
	// NoneSchedule performs the forward calculation without storing anything,
	// and performs no adjoint. It runs online, and is exhausted once the
	// forward sweep ends.
	NoneSchedule struct {
		maxN  int64
		phase int8
	}

	// SingleMemoryStorageConfig models optional configuration, for
	// NewSingleMemoryStorage.
	SingleMemoryStorageConfig struct {
		// WriteICs additionally requests persisting the restart state of
		// step 0 into StorageICs.
		// **Defaults to false, if SingleMemoryStorageConfig is nil.**
		WriteICs bool

		// StorageICs selects where the step 0 restart state is persisted,
		// if WriteICs is set; the adjoint-dependency data of every step is
		// then persisted there too, instead of in working memory. Must be
		// StorageRAM or StorageDisk.
		// **Defaults to StorageRAM, if zero, or SingleMemoryStorageConfig is
		// nil.**
		StorageICs StorageKind
	}

	// SingleMemoryStorageSchedule stores the adjoint-dependency data of every
	// step in the driver's working memory, then performs the entire adjoint
	// in a single reverse action. It runs online.
	SingleMemoryStorageSchedule struct {
		maxN     int64
		writeICs bool
		storage  StorageKind
		phase    int8
	}

	// SingleDiskStorageConfig models optional configuration, for
	// NewSingleDiskStorage.
	SingleDiskStorageConfig struct {
		// MoveData relocates each step's adjoint-dependency data out of disk
		// as it is consumed, rather than copying it. A schedule constructed
		// with MoveData supports only a single adjoint sweep; without it, the
		// disk data survives each sweep and the schedule may be iterated
		// again after EndReverse.
		// **Defaults to false, if SingleDiskStorageConfig is nil.**
		MoveData bool
	}

	// SingleDiskStorageSchedule stores the adjoint-dependency data of every
	// step on disk, then consumes it step by step on the reverse sweep. It
	// runs online.
	SingleDiskStorageSchedule struct {
		maxN     int64
		r        int64
		moveData bool
		phase    int8
	}
)

var (
	// compile time assertions

	_ Schedule = (*NoneSchedule)(nil)
	_ Schedule = (*SingleMemoryStorageSchedule)(nil)
	_ Schedule = (*SingleDiskStorageSchedule)(nil)
)

// NewNone creates a schedule performing the forward calculation only, with no
// checkpoint storage and no adjoint. The driver fixes the step count via
// Finalize, after which the schedule emits EndForward and is exhausted.
func NewNone() *NoneSchedule {
	return &NoneSchedule{maxN: UnknownN}
}

func (x *NoneSchedule) Next() (Action, error) {
	switch x.phase {
	case 0:
		x.phase = 1
		return Forward{N0: 0, N1: UnknownN, Storage: StorageNone}, nil
	case 1:
		if x.maxN == UnknownN {
			return nil, fmt.Errorf(`%w: forward advance with max_n unset; Finalize required`, ErrFinalizeConflict)
		}
		x.phase = 2
		return EndForward{}, nil
	default:
		return nil, ErrIterationAfterExhausted
	}
}

func (x *NoneSchedule) Finalize(n1 int64) error {
	if err := validateFinalize(x.maxN, 0, n1); err != nil {
		return err
	}
	x.maxN = n1
	return nil
}

func (x *NoneSchedule) MaxN() int64 { return x.maxN }

func (x *NoneSchedule) UsesDiskStorage() bool { return false }

func (x *NoneSchedule) IsExhausted() bool { return x.phase >= 2 }

// NewSingleMemoryStorage creates a schedule holding the adjoint-dependency
// data of every step in the driver's working memory at once, performing the
// adjoint in a single reverse action. The provided config may be nil.
func NewSingleMemoryStorage(config *SingleMemoryStorageConfig) *SingleMemoryStorageSchedule {
	schedule := SingleMemoryStorageSchedule{
		maxN:    UnknownN,
		storage: StorageWork,
	}
	if config != nil && config.WriteICs {
		schedule.writeICs = true
		schedule.storage = StorageRAM
		if config.StorageICs != 0 {
			schedule.storage = config.StorageICs
		}
	}
	return &schedule
}

func (x *SingleMemoryStorageSchedule) Next() (Action, error) {
	switch x.phase {
	case 0:
		x.phase = 1
		return Forward{N0: 0, N1: UnknownN, WriteICs: x.writeICs, WriteAdjDeps: true, Storage: x.storage}, nil
	case 1:
		if x.maxN == UnknownN {
			return nil, fmt.Errorf(`%w: forward advance with max_n unset; Finalize required`, ErrFinalizeConflict)
		}
		x.phase = 2
		return EndForward{}, nil
	case 2:
		x.phase = 3
		return Reverse{N1: x.maxN, N0: 0, ClearAdjDeps: true}, nil
	case 3:
		x.phase = 4
		return EndReverse{}, nil
	default:
		return nil, ErrIterationAfterExhausted
	}
}

func (x *SingleMemoryStorageSchedule) Finalize(n1 int64) error {
	if err := validateFinalize(x.maxN, 0, n1); err != nil {
		return err
	}
	x.maxN = n1
	return nil
}

func (x *SingleMemoryStorageSchedule) MaxN() int64 { return x.maxN }

func (x *SingleMemoryStorageSchedule) UsesDiskStorage() bool {
	return x.writeICs && x.storage == StorageDisk
}

func (x *SingleMemoryStorageSchedule) IsExhausted() bool { return x.phase >= 4 }

// NewSingleDiskStorage creates a schedule storing the adjoint-dependency data
// of every step on disk, consuming it step by step on the reverse sweep. The
// provided config may be nil.
func NewSingleDiskStorage(config *SingleDiskStorageConfig) *SingleDiskStorageSchedule {
	schedule := SingleDiskStorageSchedule{maxN: UnknownN}
	if config != nil {
		schedule.moveData = config.MoveData
	}
	return &schedule
}

func (x *SingleDiskStorageSchedule) Next() (Action, error) {
	switch x.phase {
	case 0:
		x.phase = 1
		return Forward{N0: 0, N1: UnknownN, WriteAdjDeps: true, Storage: StorageDisk}, nil
	case 1:
		if x.maxN == UnknownN {
			return nil, fmt.Errorf(`%w: forward advance with max_n unset; Finalize required`, ErrFinalizeConflict)
		}
		x.phase = 2
		x.r = x.maxN
		return EndForward{}, nil
	case 2:
		x.phase = 3
		if x.moveData {
			return Move{N: x.r, From: StorageDisk, To: StorageWork}, nil
		}
		return Copy{N: x.r, From: StorageDisk, To: StorageWork}, nil
	case 3:
		x.r--
		if x.r > 0 {
			x.phase = 2
		} else {
			x.phase = 4
		}
		return Reverse{N1: x.r + 1, N0: x.r, ClearAdjDeps: true}, nil
	case 4:
		if x.moveData {
			x.phase = 5
		} else {
			// disk data survives; a further adjoint sweep may follow
			x.phase = 2
			x.r = x.maxN
		}
		return EndReverse{}, nil
	default:
		return nil, ErrIterationAfterExhausted
	}
}

func (x *SingleDiskStorageSchedule) Finalize(n1 int64) error {
	if err := validateFinalize(x.maxN, 0, n1); err != nil {
		return err
	}
	x.maxN = n1
	return nil
}

func (x *SingleDiskStorageSchedule) MaxN() int64 { return x.maxN }

func (x *SingleDiskStorageSchedule) UsesDiskStorage() bool { return true }

func (x *SingleDiskStorageSchedule) IsExhausted() bool { return x.phase >= 5 }
