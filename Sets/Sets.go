// Package Sets holds the keyed retroactive containers: Dictionary,
// PartialSet, RetroSet and Multiset. Every container keeps an operation log
// keyed by int64 logical time plus a per-key index; updates mutate both in
// place and queries read them. Containers are single threaded.
package Sets

import (
	"unsafe"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Key enumerates the builtin integer types the containers accept. The list
// is exact rather than ~-ed because the per-key hash indexes only take the
// builtin types.
type Key interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | uintptr
}

// Retro is the update surface shared by the retroactive containers. Present
// time calls stamp max(existing times)+1, or 0 on an empty container; the At
// variants take an arbitrary time and report whether the edit was admitted.
type Retro[K Key] interface {
	Insert(K) bool
	Erase(K) bool
	InsertAt(K, int64) bool
	EraseAt(K, int64) bool
	DeleteOperation(int64) bool
	Clear()
}

// opLog is the time -> payload operation log. Times are unique across the
// log; iteration order is ascending time.
type opLog struct {
	*treemap.Map
}

func newOpLog() opLog {
	return opLog{treemap.NewWith(utils.Int64Comparator)}
}

func (l opLog) Has(tm int64) bool {
	_, in := l.Get(tm)
	return in
}

// Last synthesizes the present-time stamp: max(existing times)+1, or 0 on an
// empty log.
func (l opLog) Last() int64 {
	if l.Empty() {
		return 0
	}
	k, _ := l.Max()
	return k.(int64) + 1
}

func (l opLog) clone() opLog {
	c := newOpLog()
	l.Each(func(k, v interface{}) {
		c.Put(k, v)
	})
	return c
}

func (l opLog) eq(o opLog) bool {
	if l.Size() != o.Size() {
		return false
	}
	it1, it2 := l.Iterator(), o.Iterator()
	for it1.Next() && it2.Next() {
		if it1.Key() != it2.Key() || it1.Value() != it2.Value() {
			return false
		}
	}
	return true
}

// maxKey is the "no such element" sentinel: the largest representable K.
func maxKey[K Key]() K {
	var zero K
	if ^zero > zero { // unsigned
		return ^zero
	}
	return ^(K(1) << (unsafe.Sizeof(zero)*8 - 1))
}
