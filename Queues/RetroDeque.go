package Queues

import (
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/petar/GoLLRB/llrb"

	"github.com/g-m-twostay/go-retro/Trees"
)

// timeItem orders pop times inside the LLRB.
type timeItem int64

func (t timeItem) Less(than llrb.Item) bool {
	return t < than.(timeItem)
}

// RetroDeque is the retroactive double-ended queue. Pushes live in a
// time-keyed log, pop times in a separate set, and three treaps index the
// signed event streams: ul for the front side, ur for the back side, bal for
// the combined stream whose running prefix sum is the deque size over time.
// An update is admitted only if the combined stream's minimum prefix sum
// stays >= 0; a rejected update is fully rolled back.
type RetroDeque[T any] struct {
	operations *treemap.Map // push time -> pushed value
	popTimes   *llrb.LLRB
	ul, ur     Trees.Treap
	bal        Trees.Treap
}

func NewRetroDeque[T any]() *RetroDeque[T] {
	return &RetroDeque[T]{operations: treemap.NewWith(utils.Int64Comparator), popTimes: llrb.New()}
}

// lastTime synthesizes the present-time stamp: max over both logs, plus one,
// or 0 when no operation exists.
func (u *RetroDeque[T]) lastTime() int64 {
	if u.operations.Empty() && u.popTimes.Len() == 0 {
		return 0
	}
	t := int64(math.MinInt64)
	if !u.operations.Empty() {
		k, _ := u.operations.Max()
		t = k.(int64)
	}
	if u.popTimes.Len() > 0 {
		t = max(t, int64(u.popTimes.Max().(timeItem)))
	}
	return t + 1
}

func (u *RetroDeque[T]) used(tm int64) bool {
	if _, in := u.operations.Get(tm); in {
		return true
	}
	return u.popTimes.Has(timeItem(tm))
}

func (u *RetroDeque[T]) valid() bool {
	return u.bal.MinPref() >= 0
}

func (u *RetroDeque[T]) insertPush(x T, tm int64, back bool) bool {
	if u.used(tm) {
		return false
	}
	u.bal.Insert(tm, true)
	if !u.valid() {
		u.bal.Erase(tm)
		return false
	}
	u.operations.Put(tm, x)
	if back {
		u.ur.Insert(tm, true)
	} else {
		u.ul.Insert(tm, true)
	}
	return true
}

// PushBackAt records a push_back of x at time tm.
func (u *RetroDeque[T]) PushBackAt(x T, tm int64) bool {
	return u.insertPush(x, tm, true)
}

// PushFrontAt records a push_front of x at time tm.
func (u *RetroDeque[T]) PushFrontAt(x T, tm int64) bool {
	return u.insertPush(x, tm, false)
}

func (u *RetroDeque[T]) insertPop(tm int64, back bool) bool {
	if u.used(tm) {
		return false
	}
	u.bal.Insert(tm, false)
	if !u.valid() {
		u.bal.Erase(tm)
		return false
	}
	u.popTimes.InsertNoReplace(timeItem(tm))
	if back {
		u.ur.Insert(tm, false)
	} else {
		u.ul.Insert(tm, false)
	}
	return true
}

// PopBackAt records a pop_back at time tm; rejected when the deque would
// underflow at some point of the edited history.
func (u *RetroDeque[T]) PopBackAt(tm int64) bool {
	return u.insertPop(tm, true)
}

// PopFrontAt records a pop_front at time tm; rejected when the deque would
// underflow at some point of the edited history.
func (u *RetroDeque[T]) PopFrontAt(tm int64) bool {
	return u.insertPop(tm, false)
}

// DeleteOperation removes whichever operation is logged at tm; rejected when
// the remaining history would underflow.
func (u *RetroDeque[T]) DeleteOperation(tm int64) bool {
	if _, in := u.operations.Get(tm); in {
		u.bal.Erase(tm)
		if !u.valid() {
			u.bal.Insert(tm, true)
			return false
		}
		u.ul.Erase(tm)
		u.ur.Erase(tm)
		u.operations.Remove(tm)
		return true
	}
	if u.popTimes.Has(timeItem(tm)) {
		u.bal.Erase(tm)
		if !u.valid() {
			u.bal.Insert(tm, false)
			return false
		}
		u.ul.Erase(tm)
		u.ur.Erase(tm)
		u.popTimes.Delete(timeItem(tm))
		return true
	}
	return false
}

// BackAt returns the element at the back as of time tm. Pops are served from
// the near side first, so the back element is the first back-push whose
// running back-suffix-sum reaches 1 -- unless the front-side pop stream has
// dipped deep enough to consume every back-push, in which case the back is
// the leftmost surviving front-push. The comparison of ur's max suffix
// against max(0, -minPref(ul)) decides between the two.
func (u *RetroDeque[T]) BackAt(tm int64) (T, bool) {
	ul2 := u.ul.Split(tm)
	ur2 := u.ur.Split(tm)
	var at int64
	if u.ur.MaxSuff() > max(0, -u.ul.MinPref()) {
		at = u.ur.Kth(1)
	} else {
		at = u.ul.Kth(u.ul.Balance() + u.ur.Balance())
	}
	u.ul.Merge(ul2)
	u.ur.Merge(ur2)
	if v, in := u.operations.Get(at); in {
		return v.(T), true
	}
	return *new(T), false
}

// FrontAt is the mirror image of BackAt with the side trees swapped.
func (u *RetroDeque[T]) FrontAt(tm int64) (T, bool) {
	ul2 := u.ul.Split(tm)
	ur2 := u.ur.Split(tm)
	var at int64
	if u.ul.MaxSuff() > max(0, -u.ur.MinPref()) {
		at = u.ul.Kth(1)
	} else {
		at = u.ur.Kth(u.ur.Balance() + u.ul.Balance())
	}
	u.ul.Merge(ul2)
	u.ur.Merge(ur2)
	if v, in := u.operations.Get(at); in {
		return v.(T), true
	}
	return *new(T), false
}

// PushBack stamps the present time, records the push and returns the stamp.
func (u *RetroDeque[T]) PushBack(x T) int64 {
	tm := u.lastTime()
	u.PushBackAt(x, tm)
	return tm
}

func (u *RetroDeque[T]) PushFront(x T) int64 {
	tm := u.lastTime()
	u.PushFrontAt(x, tm)
	return tm
}

// PopBack stamps the present time, records the pop and returns the stamp.
// Calling it on an empty deque is undefined; guard with Size.
func (u *RetroDeque[T]) PopBack() int64 {
	tm := u.lastTime()
	u.PopBackAt(tm)
	return tm
}

// PopFront stamps the present time, records the pop and returns the stamp.
// Calling it on an empty deque is undefined; guard with Size.
func (u *RetroDeque[T]) PopFront() int64 {
	tm := u.lastTime()
	u.PopFrontAt(tm)
	return tm
}

func (u *RetroDeque[T]) Back() (T, bool) {
	return u.BackAt(math.MaxInt64)
}

func (u *RetroDeque[T]) Front() (T, bool) {
	return u.FrontAt(math.MaxInt64)
}

// Size is the present number of elements.
func (u *RetroDeque[T]) Size() int64 {
	return u.bal.Balance()
}

func (u *RetroDeque[T]) Empty() bool {
	return u.Size() == 0
}

func (u *RetroDeque[T]) Clear() {
	u.operations.Clear()
	u.popTimes = llrb.New()
	u.ul = Trees.Treap{}
	u.ur = Trees.Treap{}
	u.bal = Trees.Treap{}
}

// Clone deep copies the deque; the copy is independently mutable.
func (u *RetroDeque[T]) Clone() *RetroDeque[T] {
	c := NewRetroDeque[T]()
	u.operations.Each(func(k, v interface{}) {
		c.operations.Put(k, v)
	})
	u.popTimes.AscendGreaterOrEqual(timeItem(math.MinInt64), func(i llrb.Item) bool {
		c.popTimes.InsertNoReplace(i)
		return true
	})
	c.ul = u.ul.Clone()
	c.ur = u.ur.Clone()
	c.bal = u.bal.Clone()
	return c
}

// Eq compares recorded histories; equal push logs and pop-time sets imply
// equal observable state. T must be comparable.
func (u *RetroDeque[T]) Eq(o *RetroDeque[T]) bool {
	if u.operations.Size() != o.operations.Size() || u.popTimes.Len() != o.popTimes.Len() {
		return false
	}
	it1, it2 := u.operations.Iterator(), o.operations.Iterator()
	for it1.Next() && it2.Next() {
		if it1.Key() != it2.Key() || it1.Value() != it2.Value() {
			return false
		}
	}
	eq := true
	u.popTimes.AscendGreaterOrEqual(timeItem(math.MinInt64), func(i llrb.Item) bool {
		eq = o.popTimes.Has(i)
		return eq
	})
	return eq
}
