// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import "unsafe"

// LiveInternalNodeCount returns the number of live branch nodes: temporal
// internal nodes, temporal leaves (themselves branch points into a
// spatial subtrie, not data-bearing), and spatial internal nodes.
func (t *TST[V]) LiveInternalNodeCount() int {
	return t.tempInternal.live() + t.tempLeaf.live() + t.spatInternal.live()
}

// LiveLeafNodeCount returns the number of live, data-bearing spatial leaf
// nodes.
func (t *TST[V]) LiveLeafNodeCount() int {
	return t.spatLeaf.live()
}

// TotalNodeCount returns LiveInternalNodeCount() + LiveLeafNodeCount().
func (t *TST[V]) TotalNodeCount() int {
	return t.LiveInternalNodeCount() + t.LiveLeafNodeCount()
}

// DataCount returns the total number of payloads stored across every
// spatial leaf (disabled leaves contribute zero, since their bags are
// always empty by the time they are disabled).
func (t *TST[V]) DataCount() int {
	total := 0
	for i := range t.spatLeaf.nodes {
		total += len(t.spatLeaf.nodes[i].bag)
	}
	return total
}

// SizeMB returns the approximate in-memory footprint of the index's four
// arenas, in megabytes.
//
// Per spec.md §9, this counts every arena slot, including disabled ones:
// a disabled slot's storage (its child/prev/next fields, its now-empty
// payload bag header) is never reclaimed, so it still costs real bytes.
func (t *TST[V]) SizeMB() float64 {
	var tempInternalNode temporalInternalNode
	var tempLeafNode temporalLeafNode
	var spatInternalNode spatialInternalNode
	var spatLeafNode spatialLeafNode[V]

	total := uintptr(len(t.tempInternal.nodes))*unsafe.Sizeof(tempInternalNode) +
		uintptr(len(t.tempLeaf.nodes))*unsafe.Sizeof(tempLeafNode) +
		uintptr(len(t.spatInternal.nodes))*unsafe.Sizeof(spatInternalNode) +
		uintptr(len(t.spatLeaf.nodes))*unsafe.Sizeof(spatLeafNode)

	return float64(total) / (1024.0 * 1024.0)
}
