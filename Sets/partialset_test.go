package Sets

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// applyRandomHistory throws random retroactive updates at the set and at a
// per-key shadow, checking the admission rule each step: an update lands iff
// the key's event count has the right parity and the time follows the key's
// latest event.
func applyRandomHistory(t *testing.T, u *PartialSet[int64], n int) map[int64][]int64 {
	t.Helper()
	shadow := make(map[int64][]int64)
	used := make(map[int64]struct{})
	for range n {
		x := int64(rg.Intn(cKeyRange))
		tm := int64(rg.Intn(cTmRange))
		seq := shadow[x]
		_, dup := used[tm]
		if rg.Intn(2) == 0 {
			want := !dup && len(seq)%2 == 0 && (len(seq) == 0 || seq[len(seq)-1] <= tm)
			require.Equal(t, want, u.InsertAt(x, tm), "insert %d at %d", x, tm)
			if want {
				shadow[x] = append(seq, tm)
				used[tm] = struct{}{}
			}
		} else {
			want := !dup && len(seq)%2 == 1 && seq[len(seq)-1] <= tm
			require.Equal(t, want, u.EraseAt(x, tm), "erase %d at %d", x, tm)
			if want {
				shadow[x] = append(seq, tm)
				used[tm] = struct{}{}
			}
		}
	}
	return shadow
}

func presentKeys(shadow map[int64][]int64) []int64 {
	var keys []int64
	for x, seq := range shadow {
		if len(seq)%2 == 1 {
			keys = append(keys, x)
		}
	}
	slices.Sort(keys)
	return keys
}

func TestPartialSet_Admission(t *testing.T) {
	u := NewPartialSet[int64]()
	applyRandomHistory(t, u, cOpN)
}

func TestPartialSet_Bounds(t *testing.T) {
	u := NewPartialSet[int64]()
	keys := presentKeys(applyRandomHistory(t, u, cOpN))
	none := int64(math.MaxInt64)
	for x := int64(-1); x <= cKeyRange+1; x++ {
		wantLB, wantUB := none, none
		for _, k := range keys {
			if k >= x && wantLB == none {
				wantLB = k
			}
			if k > x && wantUB == none {
				wantUB = k
			}
		}
		require.Equal(t, wantLB, u.LowerBound(x), "lowerBound(%d)", x)
		require.Equal(t, wantUB, u.UpperBound(x), "upperBound(%d)", x)
		require.Equal(t, slices.Contains(keys, x), u.Find(x), "find(%d)", x)
	}
}

func TestPartialSet_DeleteOperation(t *testing.T) {
	u := NewPartialSet[int64]()
	require.True(t, u.InsertAt(1, 10))
	require.True(t, u.EraseAt(1, 20))
	require.True(t, u.InsertAt(2, 15))

	require.False(t, u.DeleteOperation(10), "not the key's most recent event")
	require.False(t, u.DeleteOperation(99), "nothing logged there")

	before := u.Clone()
	require.True(t, u.DeleteOperation(20))
	require.True(t, u.Find(1), "deleting the erase resurrects the key")
	require.True(t, u.EraseAt(1, 20))
	require.True(t, u.Eq(before))

	require.True(t, u.DeleteOperation(15))
	require.False(t, u.Find(2))
}

func TestPartialSet_ClearReplay(t *testing.T) {
	u := NewPartialSet[int64]()
	require.True(t, u.Insert(5))
	require.True(t, u.Insert(3))
	require.True(t, u.Erase(5))
	u.Clear()
	require.False(t, u.Find(3))
	require.True(t, u.Insert(5))
	require.True(t, u.Insert(3))
	require.True(t, u.Erase(5))
	fresh := NewPartialSet[int64]()
	fresh.Insert(5)
	fresh.Insert(3)
	fresh.Erase(5)
	require.True(t, u.Eq(fresh))
	require.True(t, u.Find(3))
	require.False(t, u.Find(5))
}

// The clone must copy the whole per-key sequence index, not just present
// membership: admission on the clone depends on it.
func TestPartialSet_CloneSequences(t *testing.T) {
	u := NewPartialSet[int64]()
	require.True(t, u.InsertAt(1, 10))
	require.True(t, u.EraseAt(1, 20))
	c := u.Clone()
	require.True(t, u.Eq(c))
	require.False(t, c.InsertAt(1, 15), "clone must remember the event at 20")
	require.True(t, c.InsertAt(1, 30))
	require.False(t, u.Find(1), "original unaffected by clone mutation")
	require.True(t, c.Find(1))
}
