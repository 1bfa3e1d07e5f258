// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tkey

import "testing"

func TestWidthAndArity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		res       Resolution
		wantBits  uint
		wantArity int
	}{
		{Year, 6, 1},
		{Month, 10, 2},
		{Day, 15, 3},
		{Hour, 20, 4},
		{Minute, 26, 5},
		{Second, 32, 6},
	}

	for _, c := range cases {
		t.Run(string(c.res), func(t *testing.T) {
			t.Parallel()

			bits, err := Width(c.res)
			if err != nil {
				t.Fatalf("Width(%q): %v", c.res, err)
			}
			if bits != c.wantBits {
				t.Errorf("Width(%q) = %d, want %d", c.res, bits, c.wantBits)
			}

			arity, err := Arity(c.res)
			if err != nil {
				t.Fatalf("Arity(%q): %v", c.res, err)
			}
			if arity != c.wantArity {
				t.Errorf("Arity(%q) = %d, want %d", c.res, arity, c.wantArity)
			}
		})
	}
}

func TestWidthUnknownResolution(t *testing.T) {
	t.Parallel()

	if _, err := Width("fortnight"); err == nil {
		t.Fatal("Width(\"fortnight\"): want error, got nil")
	}
}

func TestEncodeArityMismatch(t *testing.T) {
	t.Parallel()

	_, err := Encode(Hour, []int{2016, 4, 21})
	if err == nil {
		t.Fatal("Encode with too few fields: want error, got nil")
	}
	if _, ok := err.(*ErrArity); !ok {
		t.Fatalf("Encode error type = %T, want *ErrArity", err)
	}
}

func TestEncodeRightAligned(t *testing.T) {
	t.Parallel()

	// Year 2000, the reference year, encodes to 0 at year resolution.
	got, err := Encode(Year, []int{2000})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != 0 {
		t.Errorf("Encode(Year, [2000]) = %d, want 0", got)
	}

	// Hour resolution packs year(6) month(4) day(5) hour(5) = 20 bits.
	got, err = Encode(Hour, []int{2016, 4, 21, 0})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := uint32(16)<<14 | uint32(4)<<10 | uint32(21)<<5 | uint32(0)
	if got != want {
		t.Errorf("Encode(Hour, [2016,4,21,0]) = %d, want %d", got, want)
	}
}

func TestEncodeMonotonicInTime(t *testing.T) {
	t.Parallel()

	earlier, err := Encode(Hour, []int{2016, 4, 21, 0})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	later, err := Encode(Hour, []int{2016, 4, 21, 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !(earlier < later) {
		t.Errorf("Encode(...,0) = %d, Encode(...,1) = %d; want earlier < later", earlier, later)
	}
}
