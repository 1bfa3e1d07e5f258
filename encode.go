// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import (
	"fmt"

	"github.com/geoidx/tst/internal/s2cover"
	"github.com/geoidx/tst/internal/tkey"
)

// EncodeTime packs fields (year, month, day, hour, minute, second — only as
// many as the configured resolution consumes, in that order) into the
// fixed-width encoded time T. It returns ErrInvalidArity if len(fields)
// disagrees with the configured resolution.
//
// Per the Design Notes in spec.md §9, this is deliberately not variadic:
// a fixed-length slice lets the arity check run without reflection and
// keeps the call site explicit about what it is passing.
func (t *TST[V]) EncodeTime(fields []int) (uint32, error) {
	encoded, err := tkey.Encode(t.tRes, fields)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArity, err)
	}
	return encoded, nil
}

// EncodeSpace returns the encoded spatial key S for a coordinate: the top
// Ls bits of the 64-bit S2 cell id of (lat,lng)'s parent at the configured
// S2 level.
func (t *TST[V]) EncodeSpace(lat, lng float64) uint64 {
	return s2cover.EncodeCellID(t.s2Level, s2cover.LatLng{Lat: lat, Lng: lng})
}
