// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import "errors"

// ErrInvalidConfig is returned by New when s2_res or t_res is out of range.
var ErrInvalidConfig = errors.New("tst: invalid configuration")

// ErrInvalidArity is returned by EncodeTime when the number of calendar
// fields disagrees with the configured temporal resolution.
var ErrInvalidArity = errors.New("tst: invalid arity")
