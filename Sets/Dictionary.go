package Sets

import (
	"math"

	"github.com/cornelk/hashmap"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Dictionary is a retroactive membership set over unique keys that admits
// any history: no alternation is enforced, and membership of x at time t is
// the polarity of the most recent event on x at or before t. Find is fully
// retroactive.
type Dictionary[K Key] struct {
	operations opLog
	sequences  *hashmap.Map[K, *treemap.Map] // per key: time -> insert flag
}

func NewDictionary[K Key]() *Dictionary[K] {
	return &Dictionary[K]{newOpLog(), hashmap.New[K, *treemap.Map]()}
}

func (u *Dictionary[K]) record(x K, tm int64, ins bool) bool {
	if u.operations.Has(tm) {
		return false
	}
	u.operations.Put(tm, x)
	seq, in := u.sequences.Get(x)
	if !in {
		seq = treemap.NewWith(utils.Int64Comparator)
		u.sequences.Set(x, seq)
	}
	seq.Put(tm, ins)
	return true
}

// InsertAt records an insert of x at time tm. Fails only on a duplicate
// time.
func (u *Dictionary[K]) InsertAt(x K, tm int64) bool {
	return u.record(x, tm, true)
}

// EraseAt records an erase of x at time tm. Fails only on a duplicate time.
func (u *Dictionary[K]) EraseAt(x K, tm int64) bool {
	return u.record(x, tm, false)
}

func (u *Dictionary[K]) Insert(x K) bool {
	return u.InsertAt(x, u.operations.Last())
}

func (u *Dictionary[K]) Erase(x K) bool {
	return u.EraseAt(x, u.operations.Last())
}

// DeleteOperation removes the operation logged at tm, if any.
func (u *Dictionary[K]) DeleteOperation(tm int64) bool {
	v, in := u.operations.Get(tm)
	if !in {
		return false
	}
	x := v.(K)
	if seq, _ := u.sequences.Get(x); seq.Size() == 1 {
		u.sequences.Del(x)
	} else {
		seq.Remove(tm)
	}
	u.operations.Remove(tm)
	return true
}

// FindAt reports membership of x at time tm: the polarity of the most
// recent event on x at or before tm, absent when no such event exists.
func (u *Dictionary[K]) FindAt(x K, tm int64) bool {
	seq, in := u.sequences.Get(x)
	if !in {
		return false
	}
	_, v := seq.Floor(tm)
	return v != nil && v.(bool)
}

func (u *Dictionary[K]) Find(x K) bool {
	return u.FindAt(x, math.MaxInt64)
}

func (u *Dictionary[K]) Clear() {
	u.operations.Clear()
	u.sequences = hashmap.New[K, *treemap.Map]()
}

// Clone deep copies the dictionary; the copy is independently mutable.
func (u *Dictionary[K]) Clone() *Dictionary[K] {
	c := NewDictionary[K]()
	c.operations = u.operations.clone()
	u.sequences.Range(func(k K, seq *treemap.Map) bool {
		cs := treemap.NewWith(utils.Int64Comparator)
		seq.Each(func(tk, tv interface{}) {
			cs.Put(tk, tv)
		})
		c.sequences.Set(k, cs)
		return true
	})
	return c
}

// Eq compares recorded histories; equal logs imply equal observable state.
func (u *Dictionary[K]) Eq(o *Dictionary[K]) bool {
	return u.operations.eq(o.operations)
}
