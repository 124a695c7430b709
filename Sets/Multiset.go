package Sets

import (
	"math"
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/g-m-twostay/go-retro/Trees"
)

// Multiset is the retroactive unordered multiset: per key a treap of signed
// events whose every prefix sum (the key's count over time) must stay >= 0.
// Inserts are always admitted; erases and operation deletions roll back when
// they would drive some historical count negative.
type Multiset[K Key] struct {
	operations opLog
	sequences  *haxmap.Map[K, *Trees.Treap]
}

func NewMultiset[K Key]() *Multiset[K] {
	return &Multiset[K]{newOpLog(), haxmap.New[K, *Trees.Treap]()}
}

func (u *Multiset[K]) sequence(x K) *Trees.Treap {
	tr, in := u.sequences.Get(x)
	if !in {
		tr = new(Trees.Treap)
		u.sequences.Set(x, tr)
	}
	return tr
}

// InsertAt records a +1 event for x at time tm. Fails only on a duplicate
// time.
func (u *Multiset[K]) InsertAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	u.sequence(x).Insert(tm, true)
	u.operations.Put(tm, x)
	return true
}

// EraseAt records a -1 event for x at time tm; rolled back if some prefix
// count of x would turn negative.
func (u *Multiset[K]) EraseAt(x K, tm int64) bool {
	if u.operations.Has(tm) {
		return false
	}
	tr := u.sequence(x)
	tr.Insert(tm, false)
	if tr.MinPref() < 0 {
		tr.Erase(tm)
		if tr.Empty() {
			u.sequences.Del(x)
		}
		return false
	}
	u.operations.Put(tm, x)
	return true
}

// DeleteOperation removes the event at tm; rolled back if dropping it would
// drive the key's count negative (only deleting an insert can).
func (u *Multiset[K]) DeleteOperation(tm int64) bool {
	v, in := u.operations.Get(tm)
	if !in {
		return false
	}
	x := v.(K)
	tr, _ := u.sequences.Get(x)
	tr.Erase(tm)
	if tr.MinPref() < 0 {
		tr.Insert(tm, true)
		return false
	}
	if tr.Empty() {
		u.sequences.Del(x)
	}
	u.operations.Remove(tm)
	return true
}

// FindAt reports whether x's count at time tm is positive. It tests
// maxSuff > 0 over the events at or before tm; since every prefix count is
// >= 0, that maximum suffix sum equals the running count at tm.
func (u *Multiset[K]) FindAt(x K, tm int64) bool {
	tr, in := u.sequences.Get(x)
	if !in {
		return false
	}
	r := tr.Split(tm)
	ans := tr.MaxSuff() > 0
	tr.Merge(r)
	return ans
}

func (u *Multiset[K]) Find(x K) bool {
	return u.FindAt(x, math.MaxInt64)
}

func (u *Multiset[K]) Insert(x K) bool {
	return u.InsertAt(x, u.operations.Last())
}

func (u *Multiset[K]) Erase(x K) bool {
	return u.EraseAt(x, u.operations.Last())
}

func (u *Multiset[K]) Clear() {
	u.operations.Clear()
	u.sequences = haxmap.New[K, *Trees.Treap]()
}

// Clone deep copies the multiset, event treaps included.
func (u *Multiset[K]) Clone() *Multiset[K] {
	c := NewMultiset[K]()
	c.operations = u.operations.clone()
	u.sequences.ForEach(func(k K, tr *Trees.Treap) bool {
		ct := tr.Clone()
		c.sequences.Set(k, &ct)
		return true
	})
	return c
}

// Eq holds when the operation logs match and every key's in-order event
// signs match; treap shapes may differ between equal multisets.
func (u *Multiset[K]) Eq(o *Multiset[K]) bool {
	if !u.operations.eq(o.operations) {
		return false
	}
	n, m := 0, 0
	u.sequences.ForEach(func(K, *Trees.Treap) bool { n++; return true })
	o.sequences.ForEach(func(K, *Trees.Treap) bool { m++; return true })
	if n != m {
		return false
	}
	eq := true
	u.sequences.ForEach(func(k K, tr *Trees.Treap) bool {
		ot, in := o.sequences.Get(k)
		if !in || !slices.Equal(tr.AppendSigns(nil), ot.AppendSigns(nil)) {
			eq = false
		}
		return eq
	})
	return eq
}
