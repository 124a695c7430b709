package Sets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildRetroHistory mirrors applyRandomHistory for the fully retroactive
// set, returning the accepted per-key alternating event times.
func buildRetroHistory(t *testing.T, u *RetroSet[int64], n int) map[int64][]int64 {
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

// presentAt reports whether a key with the given alternating event times is
// in the set at time tm: an odd number of events at or before tm.
func presentAt(seq []int64, tm int64) bool {
	n := 0
	for _, e := range seq {
		if e <= tm {
			n++
		}
	}
	return n%2 == 1
}

func TestRetroSet_HistoricalQueries(t *testing.T) {
	u := NewRetroSet[int64]()
	require.True(t, u.InsertAt(5, 10))
	require.True(t, u.InsertAt(3, 20))
	require.True(t, u.EraseAt(5, 30))

	none := int64(math.MaxInt64)
	require.Equal(t, int64(5), u.LowerBoundAt(4, 25))
	require.Equal(t, none, u.LowerBoundAt(4, 35))
	require.Equal(t, int64(5), u.UpperBoundAt(3, 25))
	require.Equal(t, none, u.UpperBoundAt(3, 35))
	require.Equal(t, int64(3), u.LowerBound(1))
	require.True(t, u.FindAt(5, 29))
	require.False(t, u.FindAt(5, 30))
	require.False(t, u.FindAt(5, 9))
	require.True(t, u.Find(3))
	require.False(t, u.Find(5))
}

func TestRetroSet_RandomizedBounds(t *testing.T) {
	u := NewRetroSet[int64]()
	shadow := buildRetroHistory(t, u, cOpN)
	none := int64(math.MaxInt64)
	for range 3000 {
		at := int64(rg.Intn(cTmRange + 2))
		if rg.Intn(10) == 0 {
			at = math.MaxInt64
		}
		x := int64(rg.Intn(cKeyRange + 2))
		wantLB, wantUB := none, none
		for k, seq := range shadow {
			if !presentAt(seq, at) {
				continue
			}
			if k >= x && k < wantLB {
				wantLB = k
			}
			if k > x && k < wantUB {
				wantUB = k
			}
		}
		require.Equal(t, wantLB, u.LowerBoundAt(x, at), "lowerBound(%d, %d)", x, at)
		require.Equal(t, wantUB, u.UpperBoundAt(x, at), "upperBound(%d, %d)", x, at)
		require.Equal(t, u.LowerBoundAt(x, at) == x, u.FindAt(x, at), "find/lowerBound disagree")
	}
}

func TestRetroSet_DeleteOperation(t *testing.T) {
	u := NewRetroSet[int64]()
	require.True(t, u.InsertAt(1, 10))
	require.True(t, u.EraseAt(1, 30))
	require.True(t, u.InsertAt(2, 20))

	require.False(t, u.DeleteOperation(10), "not the key's most recent event")
	require.False(t, u.DeleteOperation(15), "nothing logged there")

	before := u.Clone()
	require.True(t, u.DeleteOperation(30))
	require.True(t, u.FindAt(1, 40), "interval reopened")
	require.True(t, u.EraseAt(1, 30))
	require.True(t, u.Eq(before))
	require.False(t, u.FindAt(1, 40))

	require.True(t, u.DeleteOperation(20))
	require.False(t, u.FindAt(2, 25))
}

func TestRetroSet_ClearReplay(t *testing.T) {
	u := NewRetroSet[int64]()
	shadow := buildRetroHistory(t, u, 300)
	u.Clear()
	require.False(t, u.Find(0))
	fresh := NewRetroSet[int64]()
	for x, seq := range shadow {
		for i, tm := range seq {
			if i%2 == 0 {
				require.True(t, u.InsertAt(x, tm))
				require.True(t, fresh.InsertAt(x, tm))
			} else {
				require.True(t, u.EraseAt(x, tm))
				require.True(t, fresh.EraseAt(x, tm))
			}
		}
	}
	require.True(t, u.Eq(fresh))
}

func TestRetroSet_CloneIndependent(t *testing.T) {
	u := NewRetroSet[int64]()
	shadow := buildRetroHistory(t, u, 300)
	c := u.Clone()
	require.True(t, u.Eq(c))
	tm := u.operations.Last()
	require.True(t, c.InsertAt(cKeyRange+5, tm))
	require.False(t, u.Eq(c))
	require.False(t, u.Find(cKeyRange+5))
	require.True(t, c.Find(cKeyRange+5))
	for x, seq := range shadow {
		for range 5 {
			at := int64(rg.Intn(cTmRange))
			require.Equal(t, presentAt(seq, at), u.FindAt(x, at), "key %d at %d", x, at)
		}
	}
}
