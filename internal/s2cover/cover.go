// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

// Package s2cover is the spatial collaborator described by the trie's
// "Collaborator contract (spatial library)": it hands back a 64-bit S2 cell
// id for a coordinate, and a level-grouped covering for a lat/lng rectangle.
// The trie's non-test code never imports golang/geo/s2 directly; this
// package is the only place where that code crosses the boundary.
package s2cover

import "github.com/golang/geo/s2"

// LatLng is a plain degrees-based coordinate pair, kept free of the s2
// package's own LatLng type so callers of the root module need not import
// golang/geo themselves.
type LatLng struct {
	Lat, Lng float64
}

// EncodedWidth returns Ls = 2*level + 4, the number of high bits of the
// level-L parent cell id that the trie keys on.
func EncodedWidth(level int) uint {
	return uint(2*level + 4)
}

// EncodeCellID returns the 64-bit S2 cell id of ll's parent at level,
// truncated to its top EncodedWidth(level) bits, matching encode_space in
// spec.md §4.1.
func EncodeCellID(level int, ll LatLng) uint64 {
	id := s2.CellIDFromLatLng(s2.LatLngFromDegrees(ll.Lat, ll.Lng)).Parent(level)
	return uint64(id) >> (64 - EncodedWidth(level))
}

// Covering groups S2 cell ids by the level at which the region coverer
// produced them; cells at level < maxLevel denote an entire sub-trie.
type Covering struct {
	// Levels lists the levels present, ascending, so callers iterate the
	// covering in level order as range_search requires.
	Levels []int
	// Cells maps level -> the raw (untruncated) 64-bit cell ids at that level.
	Cells map[int][]uint64
}

// Cover configures an s2.RegionCoverer with the trie's S2 level as MaxLevel
// and the caller-tunable maxCells cap, then covers the rectangle spanned by
// lb (lower-left) and ru (upper-right), grouping the resulting cells by
// level.
func Cover(maxLevel, maxCells int, lb, ru LatLng) Covering {
	coverer := &s2.RegionCoverer{MaxLevel: maxLevel, MaxCells: maxCells}

	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(lb.Lat, lb.Lng))
	rect = rect.AddPoint(s2.LatLngFromDegrees(ru.Lat, ru.Lng))

	union := coverer.Covering(rect)

	byLevel := make(map[int][]uint64)
	for _, id := range union {
		lvl := id.Level()
		byLevel[lvl] = append(byLevel[lvl], uint64(id))
	}

	levels := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		levels = append(levels, lvl)
	}
	// ascending level order, insertion sort is fine: coverings are small
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j-1] > levels[j]; j-- {
			levels[j-1], levels[j] = levels[j], levels[j-1]
		}
	}

	return Covering{Levels: levels, Cells: byLevel}
}
