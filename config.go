// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import (
	"fmt"

	"github.com/geoidx/tst/internal/tkey"
)

const (
	// minS2Level and maxS2Level bound the configurable S2 cell level.
	minS2Level = 1
	maxS2Level = 30

	// defaultMaxCells mirrors the original reference implementation's
	// default region-coverer budget.
	defaultMaxCells = 10_000

	rootIdx int32 = 0
	null    int32 = -1
)

// Config selects the two construction-time parameters from spec.md §6: the
// S2 cell level used for every spatial key, and the temporal resolution
// (granularity of the encoded timestamp).
type Config struct {
	// S2Res is the S2 cell level, 1..30 inclusive.
	S2Res int
	// TRes is one of "year", "month", "day", "hour", "minute", "second".
	TRes string
}

// New builds an empty TST for payload type V at the given configuration.
// V need only support ==, since Delete identifies a payload by equality.
func New[V comparable](cfg Config) (*TST[V], error) {
	if cfg.S2Res < minS2Level || cfg.S2Res > maxS2Level {
		return nil, fmt.Errorf("%w: s2_res %d out of range [%d,%d]",
			ErrInvalidConfig, cfg.S2Res, minS2Level, maxS2Level)
	}

	res := tkey.Resolution(cfg.TRes)
	lt, err := tkey.Width(res)
	if err != nil {
		return nil, fmt.Errorf("%w: t_res %q: %v", ErrInvalidConfig, cfg.TRes, err)
	}

	t := &TST[V]{
		tRes:              res,
		s2Level:           cfg.S2Res,
		lt:                lt,
		ls:                uint(2*cfg.S2Res + 4),
		maxCells:          defaultMaxCells,
		temporalHead:      null,
		spatialHead:       null,
		recentSpatialLeaf: null,
	}
	t.tempInternal.alloc() // root at index 0, per invariant 1

	return t, nil
}

// SetMaxCells sets the maximum number of S2 cells RectangleToCells may
// return from the region coverer.
func (t *TST[V]) SetMaxCells(n int) {
	t.maxCells = n
}
