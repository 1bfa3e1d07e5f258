// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

package tst

// RangeSearch returns every payload stored in a leaf whose encoded time
// falls in the half-open interval [startT, endT) and whose spatial key is
// covered by c (see RectangleToCells), per spec.md §4.6.
//
// Per the Design Notes in spec.md §9, this returns a freshly allocated
// slice rather than appending into a caller-supplied buffer: an output
// parameter is not idiomatic Go, and callers that want to reuse a buffer
// can still do so via append(buf, t.RangeSearch(...)...).
//
// A leaf whose spatial key is covered by more than one cell in c — which
// happens when the region coverer mixes cells of different levels over
// the same area — contributes its payloads once per matching cell. This
// mirrors the reference region-coverer-driven search exactly and is a
// documented, deliberate property rather than a bug: see spec.md §9.
func (t *TST[V]) RangeSearch(c Covering, startT, endT uint32) []V {
	var res []V

	timeIdx := t.travTemp(startT)
	for timeIdx != null && t.tempLeaf.nodes[timeIdx].encodedTime < endT {
		t.travSpat(c, timeIdx, &res)
		timeIdx = t.tempLeaf.nodes[timeIdx].next
	}
	return res
}

// travTemp locates the temporal leaf at which a range scan should begin:
// the earliest live leaf whose encodedTime is >= startT. Returns null if
// no live leaf has encodedTime >= startT, including when the trie holds no
// live leaves at all.
func (t *TST[V]) travTemp(startT uint32) int32 {
	if t.temporalHead == null {
		return null
	}

	u := rootIdx
	i := 1
	for ; i <= int(t.lt); i++ {
		bit := bitAt(startT, t.lt, i)
		child := t.tempInternal.nodes[u].child[bit]
		if child == null {
			break
		}
		u = child
	}
	if i == int(t.lt)+1 {
		// exact path exists; u is already the leaf for startT
		return u
	}

	// No leaf carries exactly startT: land in the same subtree by always
	// preferring the higher child, then correct via a linked-list walk.
	for ; i <= int(t.lt); i++ {
		node := &t.tempInternal.nodes[u]
		if node.child[1] != null {
			u = node.child[1]
		} else {
			u = node.child[0]
		}
	}

	v := u
	for v != null {
		if t.tempLeaf.nodes[v].encodedTime > startT {
			closest := v
			for t.tempLeaf.nodes[v].prev != null &&
				t.tempLeaf.nodes[t.tempLeaf.nodes[v].prev].encodedTime > startT {
				v = t.tempLeaf.nodes[v].prev
				closest = v
			}
			return closest
		}
		if t.tempLeaf.nodes[v].next == null {
			break
		}
		v = t.tempLeaf.nodes[v].next
	}
	// every live leaf is earlier than startT
	return null
}

// travSpat probes every covering cell against the spatial subtrie rooted
// at the given temporal leaf, appending matching payloads to *res.
func (t *TST[V]) travSpat(c Covering, timeIdx int32, res *[]V) {
	for _, level := range c.Levels {
		for _, cellID := range c.Cells[level] {
			s2 := cellID >> (64 - t.ls)
			lead := leadingFace(s2, t.ls)

			u := t.tempLeaf.nodes[timeIdx].child[lead]
			if u == null {
				continue
			}

			j := 1
			for ; j <= level; j++ {
				bit := groupAt(s2, t.ls, j)
				child := t.spatInternal.nodes[u].child[bit]
				if child == null {
					break
				}
				u = child
			}
			if j != level+1 {
				continue // the covering cell has no presence under this time
			}

			if level == t.s2Level {
				*res = append(*res, t.spatLeaf.nodes[u].bag...)
				continue
			}

			// The cell is coarser than the trie's configured level: every
			// leaf under u falls within it, and those leaves form a
			// contiguous run of the spatial linked list.
			leftMost := t.spatialExtreme(u, level, true)
			rightMost := t.spatialExtreme(u, level, false)
			t.harvestRun(leftMost, rightMost, res)
		}
	}
}

// harvestRun appends the payloads of every spatial leaf in the contiguous
// linked-list run from leftMost to rightMost (inclusive) to *res.
func (t *TST[V]) harvestRun(leftMost, rightMost int32, res *[]V) {
	if leftMost == rightMost {
		*res = append(*res, t.spatLeaf.nodes[leftMost].bag...)
		return
	}
	stop := t.spatLeaf.nodes[rightMost].next
	for trav := leftMost; trav != stop; trav = t.spatLeaf.nodes[trav].next {
		*res = append(*res, t.spatLeaf.nodes[trav].bag...)
	}
}
