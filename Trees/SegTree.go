package Trees

import (
	"math"

	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

const bucketDegree = 8

// A node in the SegTree. Children are allocated on first descent; bucket
// holds every key whose live interval covers this node's whole time range.
type segNode[K constraints.Integer] struct {
	l, r   *segNode[K]
	bucket *btree.BTreeG[K]
}

func newSegNode[K constraints.Integer]() *segNode[K] {
	return &segNode[K]{bucket: btree.NewG[K](bucketDegree, func(a, b K) bool { return a < b })}
}

// midpoint of [tl, tr] without overflowing int64.
func midpoint(tl, tr int64) int64 {
	return (tl >> 1) + (tr >> 1) + (tl & tr & 1)
}

// SegTree is a sparse segment tree over the full int64 time domain. Each key
// is stored in the buckets of the O(log) maximal nodes covering its live
// interval, so a key x is present at time t iff x sits in some bucket on the
// root-to-leaf path of t.
type SegTree[K constraints.Integer] struct {
	root *segNode[K]
}

func NewSegTree[K constraints.Integer]() *SegTree[K] {
	return &SegTree[K]{newSegNode[K]()}
}

// Add records x as live throughout [l, r].
// Time: O(log(range) * log(bucket))
func (u *SegTree[K]) Add(l, r int64, x K) {
	u.root.add(l, r, x, math.MinInt64, math.MaxInt64)
}

func (n *segNode[K]) add(l, r int64, x K, tl, tr int64) {
	if tl == l && tr == r {
		n.bucket.ReplaceOrInsert(x)
		return
	}
	tm := midpoint(tl, tr)
	if l <= tm {
		if n.l == nil {
			n.l = newSegNode[K]()
		}
		n.l.add(l, min(r, tm), x, tl, tm)
	}
	if r > tm {
		if n.r == nil {
			n.r = newSegNode[K]()
		}
		n.r.add(max(l, tm+1), r, x, tm+1, tr)
	}
}

// Remove undoes a prior Add(l, r, x). Callers must pass an interval that was
// in fact added; the descent assumes the covering children already exist.
func (u *SegTree[K]) Remove(l, r int64, x K) {
	u.root.remove(l, r, x, math.MinInt64, math.MaxInt64)
}

func (n *segNode[K]) remove(l, r int64, x K, tl, tr int64) {
	if tl == l && tr == r {
		n.bucket.Delete(x)
		return
	}
	tm := midpoint(tl, tr)
	if l <= tm {
		n.l.remove(l, min(r, tm), x, tl, tm)
	}
	if r > tm {
		n.r.remove(max(l, tm+1), r, x, tm+1, tr)
	}
}

// LowerBound returns the smallest key >= x live at time t.
// Time: O(log(range) * log(bucket))
func (u *SegTree[K]) LowerBound(t int64, x K) (K, bool) {
	var best K
	found := false
	tl, tr := int64(math.MinInt64), int64(math.MaxInt64)
	for n := u.root; n != nil; {
		n.bucket.AscendGreaterOrEqual(x, func(k K) bool {
			if !found || k < best {
				best, found = k, true
			}
			return false
		})
		tm := midpoint(tl, tr)
		if t <= tm {
			n, tr = n.l, tm
		} else {
			n, tl = n.r, tm+1
		}
	}
	return best, found
}

// UpperBound returns the smallest key > x live at time t.
// Time: O(log(range) * log(bucket))
func (u *SegTree[K]) UpperBound(t int64, x K) (K, bool) {
	var best K
	found := false
	tl, tr := int64(math.MinInt64), int64(math.MaxInt64)
	for n := u.root; n != nil; {
		n.bucket.AscendGreaterOrEqual(x, func(k K) bool {
			if k == x {
				return true
			}
			if !found || k < best {
				best, found = k, true
			}
			return false
		})
		tm := midpoint(tl, tr)
		if t <= tm {
			n, tr = n.l, tm
		} else {
			n, tl = n.r, tm+1
		}
	}
	return best, found
}

// Clone deep copies the node structure; buckets clone copy-on-write, which
// keeps both trees independently mutable.
func (u *SegTree[K]) Clone() *SegTree[K] {
	return &SegTree[K]{u.root.clone()}
}

func (n *segNode[K]) clone() *segNode[K] {
	if n == nil {
		return nil
	}
	return &segNode[K]{n.l.clone(), n.r.clone(), n.bucket.Clone()}
}
