// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import "github.com/geoidx/tst/internal/s2cover"

// LatLng is a coordinate pair in degrees.
type LatLng struct {
	Lat, Lng float64
}

// Covering is a level-grouped S2 cell covering of a queried rectangle, as
// produced by RectangleToCells and consumed by RangeSearch. Cell ids at a
// level below the trie's configured S2 level denote an entire sub-trie.
type Covering struct {
	// Levels lists the levels present, ascending.
	Levels []int
	// Cells maps level -> the 64-bit S2 cell ids produced at that level.
	Cells map[int][]uint64
}

// RectangleToCells covers the rectangle spanned by lb (lower-left corner)
// and ru (upper-right corner) with S2 cells up to the trie's configured
// level, capped at the configured max-cells budget (see SetMaxCells).
func (t *TST[V]) RectangleToCells(lb, ru LatLng) Covering {
	c := s2cover.Cover(t.s2Level, t.maxCells, s2cover.LatLng(lb), s2cover.LatLng(ru))
	return Covering{Levels: c.Levels, Cells: c.Cells}
}
