package schedules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAction_String(t *testing.T) {
	for _, tc := range [...]struct {
		expected string
		action   Action
	}{
		{`Forward(0, 2, true, false, RAM)`, Forward{N0: 0, N1: 2, WriteICs: true, Storage: StorageRAM}},
		{`Forward(0, UnknownN, false, true, WORK)`, Forward{N0: 0, N1: UnknownN, WriteAdjDeps: true, Storage: StorageWork}},
		{`Forward(0, UnknownN, false, false, NONE)`, Forward{N0: 0, N1: UnknownN, Storage: StorageNone}},
		{`Reverse(4, 3, true)`, Reverse{N1: 4, N0: 3, ClearAdjDeps: true}},
		{`Copy(0, RAM, WORK)`, Copy{N: 0, From: StorageRAM, To: StorageWork}},
		{`Move(2, DISK, WORK)`, Move{N: 2, From: StorageDisk, To: StorageWork}},
		{`EndForward()`, EndForward{}},
		{`EndReverse()`, EndReverse{}},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.action.String())
		})
	}
}

func TestAction_AppendJSON(t *testing.T) {
	for _, tc := range [...]struct {
		name     string
		action   Action
		expected string
	}{
		{
			`forward`,
			Forward{N0: 0, N1: 2, WriteICs: true, Storage: StorageRAM},
			`{"action":"Forward","n0":0,"n1":2,"write_ics":true,"write_adj_deps":false,"storage":"RAM"}`,
		},
		{
			`reverse`,
			Reverse{N1: 4, N0: 3, ClearAdjDeps: true},
			`{"action":"Reverse","n1":4,"n0":3,"clear_adj_deps":true}`,
		},
		{
			`copy`,
			Copy{N: 0, From: StorageRAM, To: StorageWork},
			`{"action":"Copy","n":0,"from":"RAM","to":"WORK"}`,
		},
		{
			`move`,
			Move{N: 2, From: StorageDisk, To: StorageWork},
			`{"action":"Move","n":2,"from":"DISK","to":"WORK"}`,
		},
		{`end forward`, EndForward{}, `{"action":"EndForward"}`},
		{`end reverse`, EndReverse{}, `{"action":"EndReverse"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.action.AppendJSON(nil)
			require.Equal(t, tc.expected, string(actual))
			require.True(t, json.Valid(actual))
		})
	}
}

func TestStorageKind_String(t *testing.T) {
	require.Equal(t, `NONE`, StorageNone.String())
	require.Equal(t, `RAM`, StorageRAM.String())
	require.Equal(t, `DISK`, StorageDisk.String())
	require.Equal(t, `WORK`, StorageWork.String())
	require.Equal(t, `INVALID`, StorageKind(9).String())
}
