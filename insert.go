// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

// bitAt returns bit i (1-based, MSB-first) of a width-bit value.
func bitAt(v uint32, width uint, i int) int32 {
	return int32((v >> (width - uint(i))) & 1)
}

// groupAt returns the i-th (1-based) 2-bit group of a width-bit spatial
// key, immediately following the leading 3-bit face selector.
func groupAt(v uint64, width uint, i int) int32 {
	return int32((v >> (width - 3 - uint(2*i))) & 0b11)
}

// leadingFace returns the leading 3-bit face selector of a spatial key.
func leadingFace(v uint64, width uint) int32 {
	return int32((v >> (width - 3)) & 0b111)
}

// Insert adds payload into the leaf identified by (T, S), creating
// whatever trie structure and linked-list links are missing along the way,
// per spec.md §4.3.
func (t *TST[V]) Insert(T uint32, S uint64, payload V) {
	tempLeafIdx, tempCreated, dStarT, bitStarT, parentT := t.descendOrExtendTemporal(T)
	if tempCreated {
		t.spliceTemporalLeaf(tempLeafIdx, dStarT, bitStarT, parentT)
	}

	spatLeafIdx, spatCreated, dStarS, bitStarS, parentS := t.descendOrExtendSpatial(tempLeafIdx, T, S)
	if spatCreated {
		t.spliceSpatialLeaf(spatLeafIdx, dStarS, bitStarS, parentS)
	}

	leaf := &t.spatLeaf.nodes[spatLeafIdx]
	leaf.bag = append(leaf.bag, payload)
	t.recentSpatialLeaf = spatLeafIdx
}

// descendOrExtendTemporal walks the temporal trie for T, creating the
// missing suffix (internal nodes then a leaf) if needed. It returns the
// reached temporal-leaf arena index, whether a new leaf was created, and
// — only when created — the (depth, bit, parent) of the first missing
// slot, needed by spliceTemporalLeaf to locate a linked-list neighbour in
// O(Lt) instead of a list scan. depth is 1-based, counting bits consumed
// (1..Lt); a node reached at depth Lt is the leaf itself.
func (t *TST[V]) descendOrExtendTemporal(T uint32) (leafIdx int32, created bool, dStar int, bitStar int32, parent int32) {
	u := rootIdx
	dStar = -1

	for i := 1; i <= int(t.lt); i++ {
		bit := bitAt(T, t.lt, i)
		child := t.tempInternal.nodes[u].child[bit]
		if child == null {
			dStar, bitStar, parent = i, bit, u
			break
		}
		u = child
	}

	if dStar == -1 {
		// full path already existed
		return u, false, 0, 0, 0
	}

	cur := parent
	for i := dStar; i <= int(t.lt); i++ {
		bit := bitAt(T, t.lt, i)
		if i != int(t.lt) {
			child := t.tempInternal.alloc()
			t.tempInternal.nodes[cur].child[bit] = child
			cur = child
		} else {
			child := t.tempLeaf.alloc()
			t.tempInternal.nodes[cur].child[bit] = child
			cur = child
		}
	}

	t.tempLeaf.nodes[cur].encodedTime = T
	return cur, true, dStar, bitStar, parent
}

// spliceTemporalLeaf inserts the newly created temporal leaf `v` into the
// temporal linked list, keeping it in strictly increasing encodedTime
// order (spec.md §4.3 step 3).
func (t *TST[V]) spliceTemporalLeaf(v int32, dStar int, bitStar int32, parent int32) {
	switch t.tempLeaf.live() {
	case 1:
		t.temporalHead = v

	case 2:
		other := t.temporalHead
		t.linkTemporalPair(other, v)
		if t.tempLeaf.nodes[v].prev == null {
			t.temporalHead = v
		}

	default:
		var prevIdx, nextIdx int32

		if bitStar == 0 {
			// the missing branch was the left child: the successor is the
			// left-most leaf under parent's right child
			sibling := t.tempInternal.nodes[parent].child[1]
			nextIdx = t.temporalExtreme(sibling, dStar, true)
			prevIdx = t.tempLeaf.nodes[nextIdx].prev
		} else {
			// the missing branch was the right child: the predecessor is
			// the right-most leaf under parent's left child
			sibling := t.tempInternal.nodes[parent].child[0]
			prevIdx = t.temporalExtreme(sibling, dStar, false)
			nextIdx = t.tempLeaf.nodes[prevIdx].next
		}

		t.linkTemporal(prevIdx, v, nextIdx)
		if prevIdx == null {
			t.temporalHead = v
		}
	}
}

// temporalExtreme descends from a temporal-trie node at the given 1-based
// depth to its left-most (preferLow=true) or right-most (preferLow=false)
// leaf. depth == Lt means idx already names a leaf.
func (t *TST[V]) temporalExtreme(idx int32, depth int, preferLow bool) int32 {
	for depth < int(t.lt) {
		node := t.tempInternal.nodes[idx]
		var next int32
		if preferLow {
			if node.child[0] != null {
				next = node.child[0]
			} else {
				next = node.child[1]
			}
		} else {
			if node.child[1] != null {
				next = node.child[1]
			} else {
				next = node.child[0]
			}
		}
		idx = next
		depth++
	}
	return idx
}

// linkTemporal splices v between prev and next in the temporal list,
// either of which may be null.
func (t *TST[V]) linkTemporal(prev, v, next int32) {
	t.tempLeaf.nodes[v].prev = prev
	t.tempLeaf.nodes[v].next = next
	if prev != null {
		t.tempLeaf.nodes[prev].next = v
	}
	if next != null {
		t.tempLeaf.nodes[next].prev = v
	}
}

// linkTemporalPair orders the two sole live temporal leaves (existing, v)
// by encodedTime.
func (t *TST[V]) linkTemporalPair(existing, v int32) {
	if t.tempLeaf.nodes[v].encodedTime < t.tempLeaf.nodes[existing].encodedTime {
		t.linkTemporal(null, v, existing)
	} else {
		t.linkTemporal(existing, v, null)
	}
}

// descendOrExtendSpatial walks the spatial subtrie rooted at tempLeafIdx's
// 8-way child array for S, creating the missing suffix if needed. Returns
// the reached spatial-leaf index, whether it was newly created, and — only
// when created and the missing branch was found at 2-bit-group depth >= 2
// — the (depth, bit, parent) needed for the trie-neighbour splice
// technique. dStar == -1 signals either "no extension happened" or "the
// extension happened too close to the root for the neighbour technique",
// which Insert disambiguates via the created flag before calling
// spliceSpatialLeaf.
func (t *TST[V]) descendOrExtendSpatial(tempLeafIdx int32, T uint32, S uint64) (leafIdx int32, created bool, dStar int, bitStar int32, parent int32) {
	dStar = -1
	lead := leadingFace(S, t.ls)

	u := t.tempLeaf.nodes[tempLeafIdx].child[lead]
	startI := 1
	if u == null {
		u = t.spatInternal.alloc()
		t.tempLeaf.nodes[tempLeafIdx].child[lead] = u
	} else {
		// depth is 1-based count of 2-bit groups consumed so far; u sits
		// at depth (i-1) when about to test iteration i. The loop leaves
		// u pointing at the parent of the first missing child, exactly
		// what extension needs to resume from.
		for i := 1; i <= t.s2Level; i++ {
			bit := groupAt(S, t.ls, i)
			node := &t.spatInternal.nodes[u]
			if node.child[bit] == null {
				startI = i
				if i >= 2 {
					dStar, bitStar, parent = i, bit, u
				}
				break
			}
			if i == t.s2Level {
				// reached an existing leaf
				leaf := &t.spatLeaf.nodes[node.child[bit]]
				leaf.encodedTime = T
				return node.child[bit], false, -1, 0, 0
			}
			u = node.child[bit]
			startI = i + 1
		}
	}

	return t.extendSpatial(u, S, T, startI, dStar, bitStar, parent)
}

// extendSpatial allocates the missing spatial suffix starting at 2-bit
// group startI, from the deepest existing node u.
func (t *TST[V]) extendSpatial(u int32, S uint64, T uint32, startI int, dStar int, bitStar int32, parent int32) (leafIdx int32, created bool, outDStar int, outBitStar int32, outParent int32) {
	cur := u
	for i := startI; i <= t.s2Level; i++ {
		bit := groupAt(S, t.ls, i)
		if i != t.s2Level {
			child := t.spatInternal.alloc()
			t.spatInternal.nodes[cur].child[bit] = child
			cur = child
		} else {
			child := t.spatLeaf.alloc()
			t.spatInternal.nodes[cur].child[bit] = child
			cur = child
		}
	}

	t.spatLeaf.nodes[cur].encodedTime = T
	t.spatLeaf.nodes[cur].s2ID = S

	if dStar >= 2 {
		return cur, true, dStar, bitStar, parent
	}
	// signal "created but below the neighbour-technique threshold": the
	// caller falls back to the pivot scan.
	return cur, true, -1, 0, 0
}

// spliceSpatialLeaf inserts the newly created spatial leaf `v` into the
// spatial linked list, keeping it in strictly increasing (encodedTime,
// S2) order (spec.md §4.3 steps 5-6).
func (t *TST[V]) spliceSpatialLeaf(v int32, dStar int, bitStar int32, parent int32) {
	switch {
	case t.spatLeaf.live() == 1:
		t.spatialHead = v
		return

	case t.spatLeaf.live() == 2:
		other := t.spatialHead
		t.linkSpatialPair(other, v)
		if t.spatLeaf.nodes[v].prev == null {
			t.spatialHead = v
		}
		return

	case dStar >= 2:
		prevIdx, nextIdx, ok := t.spatialNeighboursViaTrie(dStar, bitStar, parent)
		if ok {
			t.linkSpatial(prevIdx, v, nextIdx)
			if prevIdx == null {
				t.spatialHead = v
			}
			return
		}
		fallthrough

	default:
		// small-scale fallback: linked-list scan from a pivot, per
		// spec.md §9 — the pivot is the most recently inserted live
		// spatial leaf rather than a fixed arena offset, so it stays
		// valid across deletions.
		t.spliceSpatialByScan(v)
	}
}

// spatialNeighboursViaTrie implements the 4-ary trie-neighbour technique:
// given the first missing (depth, bit, parent) found while descending for
// a new leaf, locate its predecessor and/or successor without a list scan.
func (t *TST[V]) spatialNeighboursViaTrie(dStar int, bitStar int32, parent int32) (prevIdx, nextIdx int32, ok bool) {
	node := &t.spatInternal.nodes[parent]

	switch bitStar {
	case 0:
		b, found := firstPresentAscending(node, 1)
		if !found {
			return 0, 0, false
		}
		nextIdx = t.spatialExtreme(node.child[b], dStar, true)
		prevIdx = t.spatLeaf.nodes[nextIdx].prev
		return prevIdx, nextIdx, true

	case 3:
		b, found := firstPresentDescending(node, 2)
		if !found {
			return 0, 0, false
		}
		prevIdx = t.spatialExtreme(node.child[b], dStar, false)
		nextIdx = t.spatLeaf.nodes[prevIdx].next
		return prevIdx, nextIdx, true

	default: // 1 or 2
		if b, found := firstPresentAscending(node, bitStar+1); found {
			nextIdx = t.spatialExtreme(node.child[b], dStar, true)
			prevIdx = t.spatLeaf.nodes[nextIdx].prev
			return prevIdx, nextIdx, true
		}
		if b, found := firstPresentDescending(node, bitStar-1); found {
			prevIdx = t.spatialExtreme(node.child[b], dStar, false)
			nextIdx = t.spatLeaf.nodes[prevIdx].next
			return prevIdx, nextIdx, true
		}
		return 0, 0, false
	}
}

// firstPresentAscending scans child bits from..3 and returns the first
// present one.
func firstPresentAscending(node *spatialInternalNode, from int32) (bit int32, ok bool) {
	for b := from; b <= 3; b++ {
		if node.child[b] != null {
			return b, true
		}
	}
	return 0, false
}

// firstPresentDescending scans child bits from..0 (descending) and
// returns the first present one.
func firstPresentDescending(node *spatialInternalNode, from int32) (bit int32, ok bool) {
	for b := from; b >= 0; b-- {
		if node.child[b] != null {
			return b, true
		}
	}
	return 0, false
}

// spatialExtreme descends from a spatial-trie node at the given 1-based
// depth (count of 2-bit groups consumed to reach idx) to its left-most
// (preferLow=true) or right-most (preferLow=false) leaf.
func (t *TST[V]) spatialExtreme(idx int32, depth int, preferLow bool) int32 {
	for depth < t.s2Level {
		node := &t.spatInternal.nodes[idx]
		var b int32
		var found bool
		if preferLow {
			b, found = firstPresentAscending(node, 0)
		} else {
			b, found = firstPresentDescending(node, 3)
		}
		if !found {
			panic("tst: internal inconsistency, pruned subtree on a supposedly live path")
		}
		idx = node.child[b]
		depth++
	}
	return idx
}

// linkSpatial splices v between prev and next in the spatial list, either
// of which may be null.
func (t *TST[V]) linkSpatial(prev, v, next int32) {
	t.spatLeaf.nodes[v].prev = prev
	t.spatLeaf.nodes[v].next = next
	if prev != null {
		t.spatLeaf.nodes[prev].next = v
	}
	if next != null {
		t.spatLeaf.nodes[next].prev = v
	}
}

// linkSpatialPair orders the two sole live spatial leaves by (time, S2).
func (t *TST[V]) linkSpatialPair(existing, v int32) {
	if t.spatLeaf.nodes[v].less(&t.spatLeaf.nodes[existing]) {
		t.linkSpatial(null, v, existing)
	} else {
		t.linkSpatial(existing, v, null)
	}
}

// spliceSpatialByScan walks the spatial list from a pivot to find v's
// insertion point. Used only for the rare small-scale / near-root cases
// where the trie-neighbour technique has no sibling to pivot from.
func (t *TST[V]) spliceSpatialByScan(v int32) {
	pivot := t.recentSpatialLeaf
	if pivot == null || pivot == v {
		pivot = t.spatialHead
	}
	if pivot == null || pivot == v {
		t.spatialHead = v
		return
	}

	vNode := &t.spatLeaf.nodes[v]
	cur := pivot

	if vNode.less(&t.spatLeaf.nodes[cur]) {
		for {
			prev := t.spatLeaf.nodes[cur].prev
			if prev == null || !vNode.less(&t.spatLeaf.nodes[prev]) {
				t.linkSpatial(prev, v, cur)
				if prev == null {
					t.spatialHead = v
				}
				return
			}
			cur = prev
		}
	}

	for {
		next := t.spatLeaf.nodes[cur].next
		if next == null || vNode.less(&t.spatLeaf.nodes[next]) {
			t.linkSpatial(cur, v, next)
			return
		}
		cur = next
	}
}
