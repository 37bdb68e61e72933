package schedules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// collect drains up to limit actions, stopping early once the schedule is
// exhausted. Online schedules must already be finalized by the caller.
func collect(t *testing.T, schedule Schedule, limit int) []Action {
	t.Helper()
	var actions []Action
	for len(actions) < limit {
		action, err := schedule.Next()
		require.NoError(t, err)
		actions = append(actions, action)
		if schedule.IsExhausted() {
			break
		}
	}
	return actions
}

func TestNoneSchedule(t *testing.T) {
	schedule := NewNone()
	require.Equal(t, UnknownN, schedule.MaxN())
	require.False(t, schedule.UsesDiskStorage())

	action, err := schedule.Next()
	require.NoError(t, err)
	require.Equal(t, Forward{N0: 0, N1: UnknownN, Storage: StorageNone}, action)

	// the forward frontier is unresolved until the driver finalizes
	_, err = schedule.Next()
	require.ErrorIs(t, err, ErrFinalizeConflict)

	require.NoError(t, schedule.Finalize(4))
	require.EqualValues(t, 4, schedule.MaxN())

	action, err = schedule.Next()
	require.NoError(t, err)
	require.Equal(t, EndForward{}, action)
	require.True(t, schedule.IsExhausted())

	_, err = schedule.Next()
	require.ErrorIs(t, err, ErrIterationAfterExhausted)
}

func TestNoneSchedule_finalize(t *testing.T) {
	schedule := NewNone()
	require.ErrorIs(t, schedule.Finalize(0), ErrInvalidSteps)
	require.NoError(t, schedule.Finalize(4))
	require.NoError(t, schedule.Finalize(4)) // idempotent
	require.ErrorIs(t, schedule.Finalize(5), ErrFinalizeConflict)
}

func TestSingleMemoryStorageSchedule(t *testing.T) {
	schedule := NewSingleMemoryStorage(nil)
	require.False(t, schedule.UsesDiskStorage())

	action, err := schedule.Next()
	require.NoError(t, err)
	require.Equal(t, Forward{N0: 0, N1: UnknownN, WriteAdjDeps: true, Storage: StorageWork}, action)

	require.NoError(t, schedule.Finalize(4))

	expected := []Action{
		EndForward{},
		Reverse{N1: 4, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	require.Equal(t, expected, collect(t, schedule, 8))
	require.True(t, schedule.IsExhausted())
	_, err = schedule.Next()
	require.ErrorIs(t, err, ErrIterationAfterExhausted)
}

func TestSingleMemoryStorageSchedule_writeICs(t *testing.T) {
	schedule := NewSingleMemoryStorage(&SingleMemoryStorageConfig{
		WriteICs:   true,
		StorageICs: StorageDisk,
	})
	require.True(t, schedule.UsesDiskStorage())

	action, err := schedule.Next()
	require.NoError(t, err)
	require.Equal(t, Forward{N0: 0, N1: UnknownN, WriteICs: true, WriteAdjDeps: true, Storage: StorageDisk}, action)
}

func TestSingleDiskStorageSchedule_moveData(t *testing.T) {
	schedule := NewSingleDiskStorage(&SingleDiskStorageConfig{MoveData: true})
	require.True(t, schedule.UsesDiskStorage())

	action, err := schedule.Next()
	require.NoError(t, err)
	require.Equal(t, Forward{N0: 0, N1: UnknownN, WriteAdjDeps: true, Storage: StorageDisk}, action)

	require.NoError(t, schedule.Finalize(4))

	expected := []Action{
		EndForward{},
		Move{N: 4, From: StorageDisk, To: StorageWork},
		Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
		Move{N: 3, From: StorageDisk, To: StorageWork},
		Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
		Move{N: 2, From: StorageDisk, To: StorageWork},
		Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
		Move{N: 1, From: StorageDisk, To: StorageWork},
		Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	require.Equal(t, expected, collect(t, schedule, 16))
	require.True(t, schedule.IsExhausted())
}

func TestSingleDiskStorageSchedule_copyRetainsData(t *testing.T) {
	schedule := NewSingleDiskStorage(nil)

	_, err := schedule.Next()
	require.NoError(t, err)
	require.NoError(t, schedule.Finalize(2))

	expected := []Action{
		EndForward{},
		Copy{N: 2, From: StorageDisk, To: StorageWork},
		Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
		Copy{N: 1, From: StorageDisk, To: StorageWork},
		Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	for _, want := range expected {
		action, err := schedule.Next()
		require.NoError(t, err)
		require.Equal(t, want, action)
	}

	// the disk data survives, so a further adjoint sweep follows
	require.False(t, schedule.IsExhausted())
	action, err := schedule.Next()
	require.NoError(t, err)
	require.Equal(t, Copy{N: 2, From: StorageDisk, To: StorageWork}, action)
}
