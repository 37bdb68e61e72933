package schedules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// drain consumes an offline schedule to exhaustion.
func drain(t *testing.T, schedule Schedule) []Action {
	t.Helper()
	var actions []Action
	for !schedule.IsExhausted() {
		action, err := schedule.Next()
		require.NoError(t, err)
		actions = append(actions, action)
		require.Less(t, len(actions), 1<<20)
	}
	return actions
}

func TestRevolve_golden(t *testing.T) {
	schedule, err := NewRevolve(4, 2, nil)
	require.NoError(t, err)
	require.EqualValues(t, 4, schedule.MaxN())
	require.False(t, schedule.UsesDiskStorage())

	expected := []Action{
		Forward{N0: 0, N1: 2, WriteICs: true, Storage: StorageRAM},
		Forward{N0: 2, N1: 3, WriteICs: true, Storage: StorageRAM},
		Forward{N0: 3, N1: 4, WriteAdjDeps: true, Storage: StorageWork},
		EndForward{},
		Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
		Move{N: 2, From: StorageRAM, To: StorageWork},
		Forward{N0: 2, N1: 3, WriteAdjDeps: true, Storage: StorageWork},
		Reverse{N1: 3, N0: 2, ClearAdjDeps: true},
		Copy{N: 0, From: StorageRAM, To: StorageWork},
		Forward{N0: 0, N1: 1, Storage: StorageWork},
		Forward{N0: 1, N1: 2, WriteAdjDeps: true, Storage: StorageWork},
		Reverse{N1: 2, N0: 1, ClearAdjDeps: true},
		Move{N: 0, From: StorageRAM, To: StorageWork},
		Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: StorageWork},
		Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	requireActions(t, expected, drain(t, schedule))

	_, err = schedule.Next()
	require.ErrorIs(t, err, ErrIterationAfterExhausted)
}

func TestRevolve_singleStep(t *testing.T) {
	schedule, err := NewRevolve(1, 0, nil)
	require.NoError(t, err)
	expected := []Action{
		Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: StorageWork},
		EndForward{},
		Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	requireActions(t, expected, drain(t, schedule))
}

func TestRevolve_constructorErrors(t *testing.T) {
	_, err := NewRevolve(0, 2, nil)
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = NewRevolve(4, 0, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = NewRevolve(4, -1, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
}

func TestRevolve_finalize(t *testing.T) {
	schedule, err := NewRevolve(4, 2, nil)
	require.NoError(t, err)
	require.NoError(t, schedule.Finalize(4)) // idempotent
	require.ErrorIs(t, schedule.Finalize(5), ErrFinalizeConflict)
}

func TestDiskRevolve_noMemorySlots(t *testing.T) {
	schedule, err := NewDiskRevolve(6, 0, &CostConfig{DiskWriteCost: 1, DiskReadCost: 1})
	require.NoError(t, err)
	require.True(t, schedule.UsesDiskStorage())
	drain(t, schedule)
}

func TestPeriodicDiskRevolve_period(t *testing.T) {
	schedule, err := NewPeriodicDiskRevolve(10, 2, &CostConfig{DiskWriteCost: 2, DiskReadCost: 2})
	require.NoError(t, err)
	require.True(t, schedule.UsesDiskStorage())
	require.GreaterOrEqual(t, schedule.Period(), int64(1))
	drain(t, schedule)
}

func TestHRevolve_constructorErrors(t *testing.T) {
	_, err := NewHRevolve(4, 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = NewHRevolve(4, 1, -1, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = NewHRevolve(0, 1, 1, nil)
	require.ErrorIs(t, err, ErrInvalidSteps)
}

func TestHRevolve_matchesRevolveWithoutDisk(t *testing.T) {
	expected, err := NewRevolve(10, 3, nil)
	require.NoError(t, err)
	actual, err := NewHRevolve(10, 3, 0, nil)
	require.NoError(t, err)
	require.Equal(t, drain(t, expected), drain(t, actual))
}

func TestRevolveFamily_deterministic(t *testing.T) {
	construct := func() []Action {
		schedule, err := NewHRevolve(9, 2, 1, &CostConfig{DiskWriteCost: 3, DiskReadCost: 2})
		require.NoError(t, err)
		return drain(t, schedule)
	}
	requireActions(t, construct(), construct())
}
