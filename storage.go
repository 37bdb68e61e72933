package schedules

// StorageKind identifies where a schedule directs the driver to hold data for
// a step, either a persisted checkpoint level or the driver's ephemeral
// working buffer.
type StorageKind int8

const (
	// StorageNone is the explicit "no storage" marker, used by the None
	// schedule's single forward action.
	StorageNone StorageKind = iota

	// StorageRAM is fast, capacity-limited checkpoint storage.
	StorageRAM

	// StorageDisk is slow, capacity-limited checkpoint storage, with
	// costlier reads and writes.
	StorageDisk

	// StorageWork is the ephemeral "live" buffer held by the driver for the
	// step currently being processed. It is never persisted, and acts as the
	// sink or source for Copy and Move actions. Restart data moved or copied
	// into StorageWork seeds the next Forward action starting at that step,
	// and adjoint-dependency data written to StorageWork is consumed by the
	// next Reverse action.
	StorageWork
)

// String returns the conventional name for the storage kind.
func (x StorageKind) String() string {
	switch x {
	case StorageNone:
		return `NONE`
	case StorageRAM:
		return `RAM`
	case StorageDisk:
		return `DISK`
	case StorageWork:
		return `WORK`
	default:
		return `INVALID`
	}
}
