// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"

	"github.com/geoidx/tst"
)

func newHourIndex(t *testing.T) *tst.TST[int] {
	t.Helper()
	idx, err := tst.New[int](tst.Config{S2Res: 20, TRes: "hour"})
	require.NoError(t, err)
	return idx
}

// Scenario 1 (spec.md §8): two inserts, a range search over a rectangle
// and window containing both, returns both payloads.
func TestScenarioTwoInsertsRangeSearch(t *testing.T) {
	idx := newHourIndex(t)

	t1, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	t2, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 2})
	require.NoError(t, err)

	s1 := idx.EncodeSpace(23.180, 72.632)
	s2v := idx.EncodeSpace(23.181, 72.633)

	idx.Insert(t1, s1, 1)
	idx.Insert(t2, s2v, 2)

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.176, Lng: 72.630},
		tst.LatLng{Lat: 23.210, Lng: 72.635})

	got := idx.RangeSearch(covering, t1, tEnd)
	require.ElementsMatch(t, []int{1, 2}, got)
}

// Scenario 2: deleting one of the two records leaves only the other, and
// the data count drops by one.
func TestScenarioDeleteThenRescan(t *testing.T) {
	idx := newHourIndex(t)

	t1, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	t2, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 2})
	require.NoError(t, err)

	s1 := idx.EncodeSpace(23.180, 72.632)
	s2v := idx.EncodeSpace(23.181, 72.633)

	idx.Insert(t1, s1, 1)
	idx.Insert(t2, s2v, 2)
	require.Equal(t, 2, idx.DataCount())

	internalBefore := idx.LiveInternalNodeCount()

	idx.Delete(t2, s2v, 2)
	require.Equal(t, 1, idx.DataCount())
	require.Less(t, idx.LiveInternalNodeCount(), internalBefore, "pruning should shrink the internal node count")

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.176, Lng: 72.630},
		tst.LatLng{Lat: 23.210, Lng: 72.635})
	got := idx.RangeSearch(covering, t1, tEnd)
	require.Equal(t, []int{1}, got)
}

// Scenario 3: N payloads sharing one (T,S) key collapse to a single
// temporal leaf and a single spatial leaf.
func TestScenarioSameKeyManyPayloads(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)

	const n = 25
	for i := 1; i <= n; i++ {
		idx.Insert(T, S, i)
	}

	require.Equal(t, n, idx.DataCount())
	require.Equal(t, 1, idx.LiveLeafNodeCount())
}

// Scenario 4: inserting in scrambled order still yields the temporal
// ordering when scanned, because each temporal leaf is placed by the
// trie-neighbour splice rather than by insertion sequence.
func TestScenarioScrambledInsertOrder(t *testing.T) {
	idx := newHourIndex(t)

	t1, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	t2, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)
	t3, err := idx.EncodeTime([]int{2016, 4, 21, 2})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 3})
	require.NoError(t, err)

	s1 := idx.EncodeSpace(23.180, 72.632)
	s2v := idx.EncodeSpace(23.181, 72.633)
	s3 := idx.EncodeSpace(23.182, 72.634)

	// scrambled: t3 then t1 then t2
	idx.Insert(t3, s3, 3)
	idx.Insert(t1, s1, 1)
	idx.Insert(t2, s2v, 2)

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.176, Lng: 72.630},
		tst.LatLng{Lat: 23.210, Lng: 72.635})

	got := idx.RangeSearch(covering, t1, tEnd)
	// With one distinct spatial leaf per temporal leaf, the visitation
	// order follows the temporal linked list regardless of insertion order.
	require.Equal(t, []int{1, 2, 3}, got)
}

// Scenario 5: deleting one payload from a leaf that still holds others
// changes nothing structurally.
func TestScenarioPartialDeleteNoStructuralChange(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)

	idx.Insert(T, S, 1)
	idx.Insert(T, S, 2)

	internalBefore := idx.LiveInternalNodeCount()
	leafBefore := idx.LiveLeafNodeCount()

	idx.Delete(T, S, 2)

	require.Equal(t, 1, idx.DataCount())
	require.Equal(t, internalBefore, idx.LiveInternalNodeCount())
	require.Equal(t, leafBefore, idx.LiveLeafNodeCount())
}

// Scenario 6: a covering that hits the same spatial leaf at two different
// levels reports that leaf's payloads once per matching cell. This is a
// documented property (spec.md §9), not a bug.
func TestScenarioDuplicateEmissionAcrossLevels(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)

	lat, lng := 23.180, 72.632
	S := idx.EncodeSpace(lat, lng)
	idx.Insert(T, S, 42)

	full := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(20)
	coarse := full.Parent(10)

	covering := tst.Covering{
		Levels: []int{10, 20},
		Cells: map[int][]uint64{
			10: {uint64(coarse)},
			20: {uint64(full)},
		},
	}

	got := idx.RangeSearch(covering, T, tEnd)
	require.ElementsMatch(t, []int{42, 42}, got)
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := tst.New[int](tst.Config{S2Res: 0, TRes: "hour"})
	require.ErrorIs(t, err, tst.ErrInvalidConfig)

	_, err = tst.New[int](tst.Config{S2Res: 31, TRes: "hour"})
	require.ErrorIs(t, err, tst.ErrInvalidConfig)

	_, err = tst.New[int](tst.Config{S2Res: 20, TRes: "fortnight"})
	require.ErrorIs(t, err, tst.ErrInvalidConfig)
}

func TestEncodeTimeArityMismatch(t *testing.T) {
	t.Parallel()

	idx := newHourIndex(t)
	_, err := idx.EncodeTime([]int{2016, 4, 21})
	require.ErrorIs(t, err, tst.ErrInvalidArity)
}

func TestRangeSearchEmptyWindow(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(T, S, 1)

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.176, Lng: 72.630},
		tst.LatLng{Lat: 23.210, Lng: 72.635})

	got := idx.RangeSearch(covering, T, T)
	require.Empty(t, got)
}

func TestRangeSearchNoMatchingCells(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(T, S, 1)

	// A rectangle nowhere near the inserted point.
	covering := idx.RectangleToCells(
		tst.LatLng{Lat: -10.0, Lng: -10.0},
		tst.LatLng{Lat: -9.9, Lng: -9.9})

	got := idx.RangeSearch(covering, T, tEnd)
	require.Empty(t, got)
}

func TestDuplicateKeyStoresTwoCopies(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)

	idx.Insert(T, S, 7)
	idx.Insert(T, S, 7)
	require.Equal(t, 2, idx.DataCount())

	idx.Delete(T, S, 7)
	require.Equal(t, 1, idx.DataCount())
}

func TestInsertDeleteRoundTripRestoresCounts(t *testing.T) {
	idx := newHourIndex(t)

	T0, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S0 := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(T0, S0, 1)

	dataBefore := idx.DataCount()
	internalBefore := idx.LiveInternalNodeCount()
	leafBefore := idx.LiveLeafNodeCount()

	T1, err := idx.EncodeTime([]int{2016, 4, 21, 5})
	require.NoError(t, err)
	S1 := idx.EncodeSpace(10.0, 20.0)
	idx.Insert(T1, S1, 99)
	idx.Delete(T1, S1, 99)

	require.Equal(t, dataBefore, idx.DataCount())
	require.Equal(t, internalBefore, idx.LiveInternalNodeCount())
	require.Equal(t, leafBefore, idx.LiveLeafNodeCount())
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	idx := newHourIndex(t)

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(T, S, 1)

	before := idx.DataCount()

	otherT, err := idx.EncodeTime([]int{2020, 1, 1, 0})
	require.NoError(t, err)
	otherS := idx.EncodeSpace(1.0, 1.0)

	idx.Delete(otherT, otherS, 1) // no such path: should warn, not panic
	idx.Delete(T, S, 999)         // path exists, payload does not
	require.Equal(t, before, idx.DataCount())
}

func TestSetMaxCellsAffectsCoveringSize(t *testing.T) {
	idx := newHourIndex(t)
	idx.SetMaxCells(1)

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.0, Lng: 72.0},
		tst.LatLng{Lat: 24.0, Lng: 73.0})

	total := 0
	for _, ids := range covering.Cells {
		total += len(ids)
	}
	require.LessOrEqual(t, total, 1)
}

func TestRangeSearchOnEmptyIndex(t *testing.T) {
	idx := newHourIndex(t)

	t1, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	tEnd, err := idx.EncodeTime([]int{2016, 4, 21, 1})
	require.NoError(t, err)

	covering := idx.RectangleToCells(
		tst.LatLng{Lat: 23.176, Lng: 72.630},
		tst.LatLng{Lat: 23.210, Lng: 72.635})

	// Brand-new index: no temporal leaves at all yet.
	require.NotPanics(t, func() {
		got := idx.RangeSearch(covering, t1, tEnd)
		require.Empty(t, got)
	})

	// Insert then delete the only record: back to zero live leaves.
	S := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(t1, S, 1)
	idx.Delete(t1, S, 1)
	require.Equal(t, 0, idx.DataCount())

	require.NotPanics(t, func() {
		got := idx.RangeSearch(covering, t1, tEnd)
		require.Empty(t, got)
	})
}

func TestSizeMBGrowsWithInserts(t *testing.T) {
	idx := newHourIndex(t)
	empty := idx.SizeMB()

	T, err := idx.EncodeTime([]int{2016, 4, 21, 0})
	require.NoError(t, err)
	S := idx.EncodeSpace(23.180, 72.632)
	idx.Insert(T, S, 1)

	require.Greater(t, idx.SizeMB(), empty)
}
