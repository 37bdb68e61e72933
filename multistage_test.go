package schedules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultistage_golden(t *testing.T) {
	schedule, err := NewMultistage(4, 1, 1, nil)
	require.NoError(t, err)
	require.EqualValues(t, 4, schedule.MaxN())
	require.True(t, schedule.UsesDiskStorage())

	// the first snapshot lands in memory, the second spills to disk
	expected := []Action{
		Forward{N0: 0, N1: 2, WriteICs: true, Storage: StorageRAM},
		Forward{N0: 2, N1: 3, WriteICs: true, Storage: StorageDisk},
		Forward{N0: 3, N1: 4, WriteAdjDeps: true, Storage: StorageWork},
		EndForward{},
		Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
		Move{N: 2, From: StorageDisk, To: StorageWork},
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
}

func TestMultistage_memoryOnlyMatchesRevolve(t *testing.T) {
	// with the shared maximum trajectory the binomial distribution and the
	// revolve dynamic program agree on this instance
	expected, err := NewRevolve(4, 2, nil)
	require.NoError(t, err)
	actual, err := NewMultistage(4, 2, 0, nil)
	require.NoError(t, err)
	requireActions(t, drain(t, expected), drain(t, actual))
}

func TestMultistage_singleStep(t *testing.T) {
	schedule, err := NewMultistage(1, 0, 0, nil)
	require.NoError(t, err)
	expected := []Action{
		Forward{N0: 0, N1: 1, WriteAdjDeps: true, Storage: StorageWork},
		EndForward{},
		Reverse{N1: 1, N0: 0, ClearAdjDeps: true},
		EndReverse{},
	}
	requireActions(t, expected, drain(t, schedule))
}

func TestMultistage_constructorErrors(t *testing.T) {
	_, err := NewMultistage(0, 1, 1, nil)
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = NewMultistage(4, 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = NewMultistage(4, -1, 1, nil)
	require.ErrorIs(t, err, ErrInvalidBudget)
}

func TestMultistage_revolveTrajectory(t *testing.T) {
	schedule, err := NewMultistage(10, 2, 1, &MultistageConfig{Trajectory: TrajectoryRevolve})
	require.NoError(t, err)
	actions := drain(t, schedule)
	require.NotEmpty(t, actions)
	require.Equal(t, EndReverse{}, actions[len(actions)-1])
}

func TestNAdvance(t *testing.T) {
	for _, tc := range [...]struct {
		name       string
		n          int64
		snapshots  int
		trajectory Trajectory
		expected   int64
	}{
		{`single snapshot`, 10, 1, TrajectoryMaximum, 9},
		{`ample snapshots`, 4, 3, TrajectoryMaximum, 1},
		{`ample snapshots boundary`, 4, 4, TrajectoryMaximum, 1},
		{`maximum 4 steps 2 snapshots`, 4, 2, TrajectoryMaximum, 2},
		{`maximum 7 steps 2 snapshots`, 7, 2, TrajectoryMaximum, 4},
		{`revolve 7 steps 2 snapshots`, 7, 2, TrajectoryRevolve, 3},
		{`maximum 10 steps 2 snapshots`, 10, 2, TrajectoryMaximum, 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := nAdvance(tc.n, tc.snapshots, tc.trajectory)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}

	_, err := nAdvance(0, 1, TrajectoryMaximum)
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = nAdvance(4, 0, TrajectoryMaximum)
	require.ErrorIs(t, err, ErrInvalidBudget)
}
