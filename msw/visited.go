package msw

import "github.com/bits-and-blooms/bitset"

// visitedSet tracks visited nodes over a registry snapshot of size n.
// Nodes published after the snapshot was taken (and nodes not yet published
// at all) carry addIndex >= n; they always read as unvisited and cannot be
// marked. Such a node may be evaluated once per path that reaches it within
// a walk, which is bounded and tolerated during indexing.
type visitedSet struct {
	bits *bitset.BitSet
	n    uint64
}

func newVisitedSet(n uint64) *visitedSet {
	return &visitedSet{bits: bitset.New(uint(n)), n: n}
}

func (v *visitedSet) visit(addIndex uint64) {
	if addIndex < v.n {
		v.bits.Set(uint(addIndex))
	}
}

func (v *visitedSet) visited(addIndex uint64) bool {
	return addIndex < v.n && v.bits.Test(uint(addIndex))
}
