package Sets

import (
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/google/btree"
)

// PartialSet is the partially retroactive set: retroactive updates over
// unique keys whose per-key histories must alternate insert/erase in time
// order, with queries at the present only.
type PartialSet[K Key] struct {
	operations opLog
	sequences  *haxmap.Map[K, []int64] // per key: alternating event times
	elements   *btree.BTreeG[K]        // present membership
	none       K
}

func NewPartialSet[K Key]() *PartialSet[K] {
	return &PartialSet[K]{newOpLog(), haxmap.New[K, []int64](), btree.NewG[K](8, func(a, b K) bool { return a < b }), maxKey[K]()}
}

// InsertAt records an insert of x at time tm. The key must currently end on
// an erase (or be unseen) and tm must follow its latest event.
func (u *PartialSet[K]) InsertAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	seq, _ := u.sequences.Get(x)
	if len(seq)%2 != 0 || (len(seq) > 0 && seq[len(seq)-1] > tm) {
		return false
	}
	u.operations.Put(tm, x)
	u.elements.ReplaceOrInsert(x)
	u.sequences.Set(x, append(seq, tm))
	return true
}

// EraseAt records an erase of x at time tm. The key must currently end on an
// insert and tm must follow its latest event.
func (u *PartialSet[K]) EraseAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	seq, _ := u.sequences.Get(x)
	if len(seq)%2 == 0 || seq[len(seq)-1] > tm {
		return false
	}
	u.operations.Put(tm, x)
	u.elements.Delete(x)
	u.sequences.Set(x, append(seq, tm))
	return true
}

// DeleteOperation removes the operation at tm. Only a key's most recent
// event may be deleted.
func (u *PartialSet[K]) DeleteOperation(tm int64) bool {
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
	if len(seq)%2 != 0 { // deleting an erase resurrects the key
		u.elements.ReplaceOrInsert(x)
	} else {
		u.elements.Delete(x)
	}
	u.sequences.Set(x, seq)
	u.operations.Remove(tm)
	return true
}

func (u *PartialSet[K]) Insert(x K) bool {
	return u.InsertAt(x, u.operations.Last())
}

func (u *PartialSet[K]) Erase(x K) bool {
	return u.EraseAt(x, u.operations.Last())
}

// LowerBound returns the smallest present key >= x, or the maximum
// representable K when none exists.
func (u *PartialSet[K]) LowerBound(x K) K {
	ans := u.none
	u.elements.AscendGreaterOrEqual(x, func(k K) bool {
		ans = k
		return false
	})
	return ans
}

// UpperBound returns the smallest present key > x, or the maximum
// representable K when none exists.
func (u *PartialSet[K]) UpperBound(x K) K {
	ans := u.none
	u.elements.AscendGreaterOrEqual(x, func(k K) bool {
		if k == x {
			return true
		}
		ans = k
		return false
	})
	return ans
}

func (u *PartialSet[K]) Find(x K) bool {
	return u.elements.Has(x)
}

func (u *PartialSet[K]) Clear() {
	u.operations.Clear()
	u.sequences = haxmap.New[K, []int64]()
	u.elements.Clear(false)
}

// Clone deep copies the set, per-key sequences included.
func (u *PartialSet[K]) Clone() *PartialSet[K] {
	c := NewPartialSet[K]()
	c.operations = u.operations.clone()
	u.sequences.ForEach(func(k K, seq []int64) bool {
		c.sequences.Set(k, slices.Clone(seq))
		return true
	})
	c.elements = u.elements.Clone()
	return c
}

// Eq compares recorded histories; equal logs imply equal observable state.
func (u *PartialSet[K]) Eq(o *PartialSet[K]) bool {
	return u.operations.eq(o.operations)
}
