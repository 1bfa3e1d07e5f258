// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

import "k8s.io/klog/v2"

// Delete removes payload from the leaf identified by (T, S), pruning any
// trie structure and linked-list links left empty by its removal, per
// spec.md §4.4. A missing path or a missing payload is logged via klog and
// otherwise ignored; no other structural check is made. Delete never
// returns an error, matching the original's diagnostic-only treatment of
// these conditions.
func (t *TST[V]) Delete(T uint32, S uint64, payload V) {
	path := make([]int32, 0, int(t.lt)+t.s2Level+2)
	u := rootIdx
	path = append(path, u)

	for i := 1; i <= int(t.lt); i++ {
		bit := bitAt(T, t.lt, i)
		child := t.tempInternal.nodes[u].child[bit]
		if child == null {
			klog.Warningf("tst: delete T=%d S=%d: no temporal path at depth %d", T, S, i)
			return
		}
		u = child
		path = append(path, u)
	}

	lead := leadingFace(S, t.ls)
	child := t.tempLeaf.nodes[u].child[lead]
	if child == null {
		klog.Warningf("tst: delete T=%d S=%d: no spatial path (face %d)", T, S, lead)
		return
	}
	u = child
	path = append(path, u)

	for i := 1; i <= t.s2Level; i++ {
		bit := groupAt(S, t.ls, i)
		child := t.spatInternal.nodes[u].child[bit]
		if child == null {
			klog.Warningf("tst: delete T=%d S=%d: no spatial path at group %d", T, S, i)
			return
		}
		u = child
		path = append(path, u)
	}

	// u is now the spatial leaf; remove the payload from its bag.
	leaf := &t.spatLeaf.nodes[u]
	payloadIdx := -1
	for i, p := range leaf.bag {
		if p == payload {
			payloadIdx = i
			break
		}
	}
	if payloadIdx == -1 {
		klog.Warningf("tst: delete T=%d S=%d: leaf does not reference the given payload", T, S)
		return
	}
	leaf.bag = append(leaf.bag[:payloadIdx], leaf.bag[payloadIdx+1:]...)
	path = path[:len(path)-1]

	if len(leaf.bag) > 0 {
		return
	}

	t.disableSpatialLeaf(u, leaf)

	// 3-2: prune the spatial-internal path bottom-up while nodes are left
	// fully childless.
	u = path[len(path)-1]
	for i := t.s2Level; i >= 1; i-- {
		bit := groupAt(S, t.ls, i)
		t.spatInternal.nodes[u].child[bit] = null

		if spatialNodeHasChild(&t.spatInternal.nodes[u]) {
			return
		}
		t.spatInternal.disabled++

		path = path[:len(path)-1]
		u = path[len(path)-1]
	}

	// 3-3: detach the temporal leaf's spatial-subtrie root; disable the
	// temporal leaf itself if it now has no spatial children left.
	t.tempLeaf.nodes[u].child[lead] = null
	if temporalLeafHasChild(&t.tempLeaf.nodes[u]) {
		return
	}
	t.disableTemporalLeaf(u)

	// 3-4: prune the temporal-internal path bottom-up, same rule as 3-2.
	for i := int(t.lt); i >= 1; i-- {
		path = path[:len(path)-1]
		u = path[len(path)-1]

		bit := bitAt(T, t.lt, i)
		t.tempInternal.nodes[u].child[bit] = null
		if t.tempInternal.nodes[u].child[1-bit] != null {
			return
		}
		if u == rootIdx {
			// the root stays allocated and live even when the trie is empty
			return
		}
		t.tempInternal.disabled++
	}
}

func spatialNodeHasChild(n *spatialInternalNode) bool {
	for _, c := range n.child {
		if c != null {
			return true
		}
	}
	return false
}

func temporalLeafHasChild(n *temporalLeafNode) bool {
	for _, c := range n.child {
		if c != null {
			return true
		}
	}
	return false
}

// disableSpatialLeaf detaches leaf (at arena index u) from the spatial
// linked list and marks it disabled, keeping spatialHead and
// recentSpatialLeaf consistent with whatever leaf remains live.
func (t *TST[V]) disableSpatialLeaf(u int32, leaf *spatialLeafNode[V]) {
	prevIdx, nextIdx := leaf.prev, leaf.next
	leaf.prev, leaf.next = null, null

	switch t.spatLeaf.live() {
	case 1:
		t.spatialHead = null

	case 2:
		other := prevIdx
		if other == null {
			other = nextIdx
		}
		t.spatLeaf.nodes[other].prev = null
		t.spatLeaf.nodes[other].next = null
		t.spatialHead = other

	default:
		if prevIdx != null {
			t.spatLeaf.nodes[prevIdx].next = nextIdx
		}
		if nextIdx != null {
			t.spatLeaf.nodes[nextIdx].prev = prevIdx
		}
		if t.spatialHead == u {
			t.spatialHead = nextIdx
		}
	}

	t.spatLeaf.disabled++
	if t.recentSpatialLeaf == u {
		t.recentSpatialLeaf = t.spatialHead
	}
}

// disableTemporalLeaf detaches leaf (at arena index u) from the temporal
// linked list and marks it disabled, keeping temporalHead consistent.
func (t *TST[V]) disableTemporalLeaf(u int32) {
	leaf := &t.tempLeaf.nodes[u]
	prevIdx, nextIdx := leaf.prev, leaf.next
	leaf.prev, leaf.next = null, null

	switch t.tempLeaf.live() {
	case 1:
		t.temporalHead = null

	case 2:
		other := prevIdx
		if other == null {
			other = nextIdx
		}
		t.tempLeaf.nodes[other].prev = null
		t.tempLeaf.nodes[other].next = null
		t.temporalHead = other

	default:
		if prevIdx != null {
			t.tempLeaf.nodes[prevIdx].next = nextIdx
		}
		if nextIdx != null {
			t.tempLeaf.nodes[nextIdx].prev = prevIdx
		}
		if t.temporalHead == u {
			t.temporalHead = nextIdx
		}
	}

	t.tempLeaf.disabled++
}
