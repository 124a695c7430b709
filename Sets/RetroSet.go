package Sets

import (
	"math"
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/g-m-twostay/go-retro/Trees"
)

// RetroSet is the fully retroactive ordered set. A unique key is present
// during a union of time intervals [t_insert, t_erase-1] (the last interval
// possibly open-ended); the segment tree stores each live interval, so
// Find/LowerBound/UpperBound answer at any time, not just the present.
type RetroSet[K Key] struct {
	operations opLog
	sequences  *haxmap.Map[K, []int64] // per key: alternating event times
	tree       *Trees.SegTree[K]
	none       K
}

func NewRetroSet[K Key]() *RetroSet[K] {
	return &RetroSet[K]{newOpLog(), haxmap.New[K, []int64](), Trees.NewSegTree[K](), maxKey[K]()}
}

// InsertAt records an insert of x at time tm, opening the interval [tm, +inf)
// for x. The key must currently end on an erase (or be unseen) and tm must
// follow its latest event.
func (u *RetroSet[K]) InsertAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	seq, _ := u.sequences.Get(x)
	if len(seq)%2 != 0 || (len(seq) > 0 && seq[len(seq)-1] > tm) {
		return false
	}
	u.operations.Put(tm, x)
	u.tree.Add(tm, math.MaxInt64, x)
	u.sequences.Set(x, append(seq, tm))
	return true
}

// EraseAt records an erase of x at time tm, closing the key's open interval
// to [p, tm-1] where p is the matching insert time.
func (u *RetroSet[K]) EraseAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	seq, _ := u.sequences.Get(x)
	if len(seq)%2 == 0 || seq[len(seq)-1] > tm {
		return false
	}
	u.operations.Put(tm, x)
	prev := seq[len(seq)-1]
	u.tree.Remove(prev, math.MaxInt64, x)
	u.tree.Add(prev, tm-1, x)
	u.sequences.Set(x, append(seq, tm))
	return true
}

// DeleteOperation removes the operation at tm, restoring the prior interval
// shape. Only a key's most recent event may be deleted.
func (u *RetroSet[K]) DeleteOperation(tm int64) bool {
	v, in := u.operations.Get(tm)
	if !in {
		return false
	}
	x := v.(K)
	seq, _ := u.sequences.Get(x)
	if seq[len(seq)-1] != tm {
		return false
	}
	seq = seq[:len(seq)-1]
	if len(seq)%2 != 0 { // deleting an erase reopens the interval
		prev := seq[len(seq)-1]
		u.tree.Remove(prev, tm-1, x)
		u.tree.Add(prev, math.MaxInt64, x)
	} else {
		u.tree.Remove(tm, math.MaxInt64, x)
	}
	u.sequences.Set(x, seq)
	u.operations.Remove(tm)
	return true
}

func (u *RetroSet[K]) Insert(x K) bool {
	return u.InsertAt(x, u.operations.Last())
}

func (u *RetroSet[K]) Erase(x K) bool {
	return u.EraseAt(x, u.operations.Last())
}

// LowerBoundAt returns the smallest key >= x present at time tm, or the
// maximum representable K when none exists.
func (u *RetroSet[K]) LowerBoundAt(x K, tm int64) K {
	if k, in := u.tree.LowerBound(tm, x); in {
		return k
	}
	return u.none
}

// UpperBoundAt returns the smallest key > x present at time tm, or the
// maximum representable K when none exists.
func (u *RetroSet[K]) UpperBoundAt(x K, tm int64) K {
	if k, in := u.tree.UpperBound(tm, x); in {
		return k
	}
	return u.none
}

func (u *RetroSet[K]) FindAt(x K, tm int64) bool {
	return u.LowerBoundAt(x, tm) == x
}

func (u *RetroSet[K]) LowerBound(x K) K {
	return u.LowerBoundAt(x, math.MaxInt64)
}

func (u *RetroSet[K]) UpperBound(x K) K {
	return u.UpperBoundAt(x, math.MaxInt64)
}

func (u *RetroSet[K]) Find(x K) bool {
	return u.FindAt(x, math.MaxInt64)
}

func (u *RetroSet[K]) Clear() {
	u.operations.Clear()
	u.sequences = haxmap.New[K, []int64]()
	u.tree = Trees.NewSegTree[K]()
}

// Clone deep copies the set, per-key sequences included.
func (u *RetroSet[K]) Clone() *RetroSet[K] {
	c := NewRetroSet[K]()
	c.operations = u.operations.clone()
	u.sequences.ForEach(func(k K, seq []int64) bool {
		c.sequences.Set(k, slices.Clone(seq))
		return true
	})
	c.tree = u.tree.Clone()
	return c
}

// Eq compares recorded histories; equal logs imply equal observable state.
func (u *RetroSet[K]) Eq(o *RetroSet[K]) bool {
	return u.operations.eq(o.operations)
}
