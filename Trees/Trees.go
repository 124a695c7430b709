// Package Trees holds the time-indexed search trees backing the retroactive
// containers: an implicit-key treap over int64 event times and a sparse
// segment tree spanning the whole int64 time domain. Both are single
// threaded; validity checks belong to the callers.
package Trees

import "math/rand"

// priorityRand feeds treap priorities. The seed is fixed so that tree shapes
// are reproducible run to run; SeedPriorities swaps the stream when a test
// wants its own.
var priorityRand = rand.New(rand.NewSource(0x5DEECE66D))

func SeedPriorities(seed int64) {
	priorityRand = rand.New(rand.NewSource(seed))
}

// newPriority combines two 15-bit draws into a 30-bit priority rather than
// trusting the high bits of a single draw.
func newPriority() int32 {
	return (priorityRand.Int31()&0x7FFF)<<15 | priorityRand.Int31()&0x7FFF
}
