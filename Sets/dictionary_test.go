package Sets

import (
	"math"
	"math/rand"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/require"
)

var rg = *rand.New(rand.NewSource(0))

const (
	cOpN      = 2000
	cKeyRange = 50
	cTmRange  = 100000
)

func TestDictionary_DuplicateTime(t *testing.T) {
	u := NewDictionary[int64]()
	require.True(t, u.InsertAt(1, 10))
	require.False(t, u.InsertAt(2, 10))
	require.False(t, u.EraseAt(1, 10))
	require.True(t, u.EraseAt(1, 11))
}

// The event at the largest time at or before the query decides membership.
func TestDictionary_FindBetweenEvents(t *testing.T) {
	u := NewDictionary[int64]()
	require.True(t, u.InsertAt(7, 5))
	require.True(t, u.InsertAt(7, 10)) // dictionary tolerates repeated inserts
	require.True(t, u.FindAt(7, 7))
	require.True(t, u.FindAt(7, 5))
	require.False(t, u.FindAt(7, 4))
	require.True(t, u.EraseAt(7, 20))
	require.False(t, u.FindAt(7, 25))
	require.True(t, u.FindAt(7, 19))
	require.False(t, u.Find(7))
}

func TestDictionary_PresentPolarity(t *testing.T) {
	u := NewDictionary[int64]()
	latest := make(map[int64]bool)
	keys := mapset.NewThreadUnsafeSet[int64]()
	for tm := int64(0); tm < cOpN; tm++ {
		x := int64(rg.Intn(cKeyRange))
		keys.Add(x)
		if rg.Intn(2) == 0 {
			require.True(t, u.InsertAt(x, tm))
			latest[x] = true
		} else {
			require.True(t, u.EraseAt(x, tm))
			latest[x] = false
		}
	}
	keys.Each(func(x int64) bool {
		require.Equal(t, latest[x], u.Find(x), "key %d", x)
		require.Equal(t, latest[x], u.FindAt(x, math.MaxInt64), "key %d", x)
		return false
	})
	require.False(t, u.Find(int64(cKeyRange + 1)))
}

func TestDictionary_RetroactiveFind(t *testing.T) {
	u := NewDictionary[int64]()
	type devt struct {
		tm  int64
		ins bool
	}
	events := make(map[int64][]devt) // per key, ascending times
	used := make(map[int64]struct{})
	for range cOpN {
		x := int64(rg.Intn(cKeyRange))
		tm := int64(rg.Intn(cTmRange))
		if _, in := used[tm]; in {
			continue
		}
		used[tm] = struct{}{}
		ins := rg.Intn(2) == 0
		if ins {
			require.True(t, u.InsertAt(x, tm))
		} else {
			require.True(t, u.EraseAt(x, tm))
		}
		events[x] = append(events[x], devt{tm, ins})
	}
	for x, evs := range events {
		for range 50 {
			at := int64(rg.Intn(cTmRange + 2))
			want := false
			best := int64(math.MinInt64)
			for _, e := range evs {
				if e.tm <= at && e.tm > best {
					best, want = e.tm, e.ins
				}
			}
			require.Equal(t, want, u.FindAt(x, at), "key %d at %d", x, at)
		}
	}
}

func TestDictionary_DeleteRestores(t *testing.T) {
	u := NewDictionary[int64]()
	for tm := int64(0); tm < 200; tm++ {
		x := int64(rg.Intn(cKeyRange))
		if rg.Intn(2) == 0 {
			u.InsertAt(x, tm)
		} else {
			u.EraseAt(x, tm)
		}
	}
	before := u.Clone()
	tm := int64(rg.Intn(200))
	v, in := u.operations.Get(tm)
	require.True(t, in)
	x := v.(int64)
	seq, _ := u.sequences.Get(x)
	fv, _ := seq.Get(tm)
	ins := fv.(bool)
	require.True(t, u.DeleteOperation(tm))
	require.False(t, u.DeleteOperation(tm))
	require.False(t, u.Eq(before))
	if ins {
		require.True(t, u.InsertAt(x, tm))
	} else {
		require.True(t, u.EraseAt(x, tm))
	}
	require.True(t, u.Eq(before))
}

func TestDictionary_ClearReplay(t *testing.T) {
	u := NewDictionary[int64]()
	type op struct {
		x   int64
		tm  int64
		ins bool
	}
	var ops []op
	for tm := int64(0); tm < 500; tm++ {
		o := op{int64(rg.Intn(cKeyRange)), tm, rg.Intn(2) == 0}
		ops = append(ops, o)
		if o.ins {
			u.InsertAt(o.x, o.tm)
		} else {
			u.EraseAt(o.x, o.tm)
		}
	}
	u.Clear()
	fresh := NewDictionary[int64]()
	for _, o := range ops {
		if o.ins {
			u.InsertAt(o.x, o.tm)
			fresh.InsertAt(o.x, o.tm)
		} else {
			u.EraseAt(o.x, o.tm)
			fresh.EraseAt(o.x, o.tm)
		}
	}
	require.True(t, u.Eq(fresh))
}

func TestDictionary_CloneIndependent(t *testing.T) {
	u := NewDictionary[int64]()
	u.InsertAt(1, 10)
	u.EraseAt(1, 20)
	c := u.Clone()
	require.True(t, u.Eq(c))
	c.InsertAt(1, 30)
	require.False(t, u.Eq(c))
	require.False(t, u.Find(1))
	require.True(t, c.Find(1))
	require.True(t, u.FindAt(1, 15))
}
