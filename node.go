// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import "github.com/geoidx/tst/internal/tkey"

// Every inter-node link is an arena index, never a pointer: a single
// arena owns all nodes of one kind, and the trie/linked-list structure is
// relational data over that arena. null (-1) is the absent-link sentinel.

// temporalInternalNode is a binary branch node of the temporal trie.
type temporalInternalNode struct {
	child [2]int32
}

func newTemporalInternalNode() temporalInternalNode {
	return temporalInternalNode{child: [2]int32{null, null}}
}

// temporalLeafNode is a terminal node of the temporal trie and the entry
// point into a spatial subtrie: its 8-way child array is indexed by the
// leading 3 bits of the spatial key. prev/next thread the temporal leaves
// in strictly increasing encodedTime order.
type temporalLeafNode struct {
	encodedTime uint32
	child       [8]int32
	prev, next  int32
}

func newTemporalLeafNode() temporalLeafNode {
	n := temporalLeafNode{prev: null, next: null}
	for i := range n.child {
		n.child[i] = null
	}
	return n
}

// spatialInternalNode is a 4-ary branch node of the spatial trie, indexed
// by successive 2-bit groups of the spatial key.
type spatialInternalNode struct {
	child [4]int32
}

func newSpatialInternalNode() spatialInternalNode {
	return spatialInternalNode{child: [4]int32{null, null, null, null}}
}

// spatialLeafNode is a data-bearing leaf: the owner of a payload bag.
// prev/next thread the spatial leaves in strictly increasing
// (encodedTime, s2ID) lexicographic order.
type spatialLeafNode[V comparable] struct {
	encodedTime uint32
	s2ID        uint64
	prev, next  int32
	bag         []V
}

// less implements the (encodedTime, s2ID) ordering used by both the
// spatial linked-list splice and the pivot-scan fallback.
func (n *spatialLeafNode[V]) less(o *spatialLeafNode[V]) bool {
	if n.encodedTime != o.encodedTime {
		return n.encodedTime < o.encodedTime
	}
	return n.s2ID < o.s2ID
}

// ---- arenas ----------------------------------------------------------
//
// Each arena is an append-only slice plus a disabled counter; allocation
// returns the new index, and a deleted slot is never reused, only logically
// disabled (its links cleared, the counter bumped). Live counts are always
// len(nodes) - disabled.

type temporalInternalArena struct {
	nodes    []temporalInternalNode
	disabled int
}

func (a *temporalInternalArena) alloc() int32 {
	a.nodes = append(a.nodes, newTemporalInternalNode())
	return int32(len(a.nodes) - 1)
}

func (a *temporalInternalArena) live() int { return len(a.nodes) - a.disabled }

type temporalLeafArena struct {
	nodes    []temporalLeafNode
	disabled int
}

func (a *temporalLeafArena) alloc() int32 {
	a.nodes = append(a.nodes, newTemporalLeafNode())
	return int32(len(a.nodes) - 1)
}

func (a *temporalLeafArena) live() int { return len(a.nodes) - a.disabled }

type spatialInternalArena struct {
	nodes    []spatialInternalNode
	disabled int
}

func (a *spatialInternalArena) alloc() int32 {
	a.nodes = append(a.nodes, newSpatialInternalNode())
	return int32(len(a.nodes) - 1)
}

func (a *spatialInternalArena) live() int { return len(a.nodes) - a.disabled }

type spatialLeafArena[V comparable] struct {
	nodes    []spatialLeafNode[V]
	disabled int
}

func (a *spatialLeafArena[V]) alloc() int32 {
	a.nodes = append(a.nodes, spatialLeafNode[V]{prev: null, next: null})
	return int32(len(a.nodes) - 1)
}

func (a *spatialLeafArena[V]) live() int { return len(a.nodes) - a.disabled }

// TST is a Temporal-Spatial Trie over payloads of type V. The zero value is
// not ready to use; build one with New.
type TST[V comparable] struct {
	tRes     tkey.Resolution
	s2Level  int
	lt       uint // encoded-time width, bits
	ls       uint // encoded-space width, bits
	maxCells int

	tempInternal temporalInternalArena
	tempLeaf     temporalLeafArena
	spatInternal spatialInternalArena
	spatLeaf     spatialLeafArena[V]

	// temporalHead is the head of the temporal linked list (lowest
	// encodedTime live leaf), used both as the degenerate-case pivot in
	// spliceTemporalLeaf and by RangeSearch's travTemp to detect an empty
	// trie.
	temporalHead int32

	// spatialHead is the head of the spatial linked list (lowest
	// (time,S2) live leaf), used as the last-resort pivot for the
	// small-scale insertion fallback described in spec.md §4.3 step 6.
	spatialHead int32

	// recentSpatialLeaf is the spatial leaf that received the most recent
	// insert; when that leaf is disabled it is repointed to spatialHead,
	// so it always names a live leaf or null. It is the preferred pivot for the small-scale fallback,
	// robust against arena disablings in a way that a fixed
	// "SPAT_LEAF_IDX - 2" offset is not (spec.md §9, first Open Question).
	recentSpatialLeaf int32
}
