// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

// Package tkey packs calendar fields into the fixed-width temporal key
// consumed by the binary temporal trie. It is an external collaborator of
// the trie: callers hand it raw calendar fields and get back a bit-packed
// uint32, and the trie never looks inside that integer except bit by bit.
package tkey

import "fmt"

// Resolution names the configured temporal granularity.
type Resolution string

const (
	Year   Resolution = "year"
	Month  Resolution = "month"
	Day    Resolution = "day"
	Hour   Resolution = "hour"
	Minute Resolution = "minute"
	Second Resolution = "second"
)

// refYear is subtracted from the year field before encoding, per spec.
const refYear = 2000

// fieldWidths are the per-field bit widths, MSB-first, in calendar order.
var fieldWidths = [6]uint{6, 4, 5, 5, 6, 6}

// widthsByResolution maps a resolution to (Lt, arity).
var widthsByResolution = map[Resolution]struct {
	bits  uint
	arity int
}{
	Year:   {6, 1},
	Month:  {10, 2},
	Day:    {15, 3},
	Hour:   {20, 4},
	Minute: {26, 5},
	Second: {32, 6},
}

// Width returns the encoded key width Lt for resolution, or an error if the
// resolution name is unknown.
func Width(res Resolution) (uint, error) {
	w, ok := widthsByResolution[res]
	if !ok {
		return 0, fmt.Errorf("tkey: unknown temporal resolution %q", res)
	}
	return w.bits, nil
}

// Arity returns the number of calendar fields a resolution consumes.
func Arity(res Resolution) (int, error) {
	w, ok := widthsByResolution[res]
	if !ok {
		return 0, fmt.Errorf("tkey: unknown temporal resolution %q", res)
	}
	return w.arity, nil
}

// ErrArity is returned by Encode when the field slice length disagrees with
// the resolution's arity.
type ErrArity struct {
	Resolution Resolution
	Expected   int
	Got        int
}

func (e *ErrArity) Error() string {
	return fmt.Sprintf("tkey: resolution %q expects %d calendar field(s), got %d",
		e.Resolution, e.Expected, e.Got)
}

// Encode packs fields (year, month, day, hour, minute, second — only as many
// as the resolution's arity demands, in that order) MSB-first into a Lt-bit
// value right-aligned in the returned uint32. The year field is encoded
// relative to refYear.
func Encode(res Resolution, fields []int) (uint32, error) {
	bits, ok := widthsByResolution[res]
	if !ok {
		return 0, fmt.Errorf("tkey: unknown temporal resolution %q", res)
	}
	if len(fields) != bits.arity {
		return 0, &ErrArity{Resolution: res, Expected: bits.arity, Got: len(fields)}
	}

	lt := bits.bits
	var encoded uint32
	var accLen uint

	for i, v := range fields {
		width := fieldWidths[i]
		val := v
		if i == 0 {
			val -= refYear
		}
		accLen += width
		encoded |= uint32(val) << (lt - accLen)
	}

	return encoded, nil
}
