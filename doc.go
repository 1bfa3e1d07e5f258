// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

// Package tst provides a Temporal-Spatial Trie (TST): a main-memory
// composite index over time-stamped, geolocated records.
//
// A TST is two stacked radix tries: a binary trie keyed by a fixed-width
// encoded timestamp, whose leaves are the roots of quaternary radix tries
// keyed by the top bits of an S2 cell id. Both leaf layers are additionally
// threaded as doubly-linked lists — temporal leaves in time order, spatial
// leaves in (time, S2 cell) order — so that a range query over a time
// window and a lat/lng rectangle degrades to a handful of trie descents
// plus linked-list walks, never a full scan.
//
// All four node kinds (temporal-internal, temporal-leaf, spatial-internal,
// spatial-leaf) live in their own append-only arena, addressed by integer
// index rather than pointer. Deletion never reclaims a slot; it clears the
// slot's links and increments a per-arena disabled counter, so live counts
// are always `len(arena) - disabled`.
//
// TST is single-threaded and synchronous: every Insert, Delete, and
// RangeSearch runs to completion before the next begins, and concurrent
// mutation from multiple goroutines is the caller's responsibility to
// serialize.
package tst
