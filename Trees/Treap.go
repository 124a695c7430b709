package Trees

import "math"

// A node in the Treap.
// The zero value is meaningless; nodes are created through newTnode only.
// Children are exclusively owned. prior is heap-ordered, tm BST-ordered.
type tnode struct {
	l, r    *tnode
	prior   int32
	ins     bool
	tm      int64
	balance int64
	minPref int64
	minSuff int64
	maxSuff int64
}

func sign(ins bool) int64 {
	if ins {
		return 1
	}
	return -1
}

func newTnode(tm int64, ins bool) *tnode {
	s := sign(ins)
	return &tnode{nil, nil, newPriority(), ins, tm, s, s, s, s}
}

// The accessors treat an absent subtree as an empty event stream: balance 0
// and extrema 0. Inside recalc the missing-child identities are the usual
// +inf/-inf instead; the two views never mix.
func balanceOf(t *tnode) int64 {
	if t == nil {
		return 0
	}
	return t.balance
}

func minPrefOf(t *tnode) int64 {
	if t == nil {
		return 0
	}
	return t.minPref
}

func minSuffOf(t *tnode) int64 {
	if t == nil {
		return 0
	}
	return t.minSuff
}

func maxSuffOf(t *tnode) int64 {
	if t == nil {
		return 0
	}
	return t.maxSuff
}

// recalc rebuilds t's aggregates from its children.
// balance is the signed sum of the subtree; minPref/minSuff/maxSuff are the
// extrema of the running signed sum over prefixes resp. suffixes.
// Time: O(1)
func recalc(t *tnode) {
	if t == nil {
		return
	}
	s := sign(t.ins)
	t.balance = s + balanceOf(t.l) + balanceOf(t.r)
	lp := int64(math.MaxInt64)
	if t.l != nil {
		lp = t.l.minPref
	}
	t.minPref = min(lp, balanceOf(t.l)+s+min(0, minPrefOf(t.r)))
	rs := int64(math.MaxInt64)
	if t.r != nil {
		rs = t.r.minSuff
	}
	t.minSuff = min(rs, balanceOf(t.r)+s+min(0, minSuffOf(t.l)))
	ms := int64(math.MinInt64)
	if t.r != nil {
		ms = t.r.maxSuff
	}
	t.maxSuff = max(ms, balanceOf(t.r)+s+max(0, maxSuffOf(t.l)))
}

// merge joins l and r by priority; every time in l must be <= every time in
// r. Recursive.
// Time: O(D)
func merge(l, r *tnode) (t *tnode) {
	if l == nil {
		t = r
	} else if r == nil {
		t = l
	} else if l.prior > r.prior {
		l.r = merge(l.r, r)
		t = l
	} else {
		r.l = merge(l, r.l)
		t = r
	}
	recalc(t)
	return
}

// split partitions t by time: l keeps tm<=x, r the rest. Recursive.
// Time: O(D)
func split(t *tnode, x int64) (l, r *tnode) {
	if t == nil {
		return nil, nil
	}
	if t.tm <= x {
		t.r, r = split(t.r, x)
		l = t
	} else {
		l, t.l = split(t.l, x)
		r = t
	}
	recalc(l)
	recalc(r)
	return
}

func cloneNode(t *tnode) *tnode {
	if t == nil {
		return nil
	}
	c := *t
	c.l = cloneNode(t.l)
	c.r = cloneNode(t.r)
	return &c
}

func appendSigns(t *tnode, dst []bool) []bool {
	if t != nil {
		dst = appendSigns(t.l, dst)
		dst = append(dst, t.ins)
		dst = appendSigns(t.r, dst)
	}
	return dst
}

// Treap is an implicit-key treap over int64 event times. Each node carries a
// signed event (+1 insert/push, -1 erase/pop); the aggregates expose the
// subtree's signed sum and the extrema of the running sum over prefixes and
// suffixes. The treap itself never rejects an operation.
// The zero value is an empty treap ready for use.
type Treap struct {
	root *tnode
}

func (u Treap) Empty() bool {
	return u.root == nil
}

// Balance is the signed sum over all events; 0 on an empty treap.
func (u Treap) Balance() int64 {
	return balanceOf(u.root)
}

// MinPref is the minimum running prefix sum; 0 on an empty treap.
func (u Treap) MinPref() int64 {
	return minPrefOf(u.root)
}

func (u Treap) MinSuff() int64 {
	return minSuffOf(u.root)
}

func (u Treap) MaxSuff() int64 {
	return maxSuffOf(u.root)
}

// Split detaches every node with time > x and returns them as a new treap;
// u keeps the rest.
// Time: O(D)
func (u *Treap) Split(x int64) Treap {
	l, r := split(u.root, x)
	u.root = l
	return Treap{r}
}

// Merge appends r to u; every time in r must exceed every time in u.
// Time: O(D)
func (u *Treap) Merge(r Treap) {
	u.root = merge(u.root, r.root)
}

// Insert adds the event (tm, ins). tm must not already be present.
// Time: O(D)
func (u *Treap) Insert(tm int64, ins bool) {
	r := u.Split(tm)
	u.root = merge(u.root, newTnode(tm, ins))
	u.Merge(r)
}

// Erase drops the node at time tm if one exists.
// Time: O(D)
func (u *Treap) Erase(tm int64) {
	r := u.Split(tm)
	u.Split(tm - 1)
	u.Merge(r)
}

// Kth locates the time of the node at which the running signed suffix sum
// reaches exactly k, 1-indexed from the newest event: descend right while
// the right subtree's [minSuff, maxSuff] range can still contain k,
// otherwise settle on the current node or continue left with k reduced by
// the right-plus-self contribution. Returns math.MaxInt64 when no such node
// exists.
// Time: O(D)
func (u Treap) Kth(k int64) int64 {
	for t := u.root; t != nil; {
		if t.r != nil && k >= t.r.minSuff && k <= t.r.maxSuff {
			t = t.r
			continue
		}
		rb := balanceOf(t.r) + sign(t.ins)
		if rb == k {
			return t.tm
		}
		k -= rb
		t = t.l
	}
	return math.MaxInt64
}

// Clone deep copies the treap; the copy shares no nodes with u.
func (u Treap) Clone() Treap {
	return Treap{cloneNode(u.root)}
}

// AppendSigns appends the in-order insert flags to dst and returns it.
func (u Treap) AppendSigns(dst []bool) []bool {
	return appendSigns(u.root, dst)
}
