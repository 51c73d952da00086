package msw

import (
	"sync"

	"github.com/patrikhermansson/swann/core"
)

// unassignedIndex marks a node that has not been published into the registry.
const unassignedIndex = ^uint64(0)

// MSWNode is a vertex of the small-world graph. It wraps a borrowed data
// point, carries the index assigned at publication time, and guards its
// friends list with a per-node mutex.
type MSWNode struct {
	data     core.Point
	addIndex uint64

	accessGuard sync.Mutex
	friends     []*MSWNode
}

func newMSWNode(data core.Point) *MSWNode {
	return &MSWNode{data: data, addIndex: unassignedIndex}
}

// Data returns the point this node wraps.
func (n *MSWNode) Data() core.Point { return n.data }

// friendsSnapshot copies the friends list under the access guard. The
// returned handles are stable; the live list may grow afterwards.
func (n *MSWNode) friendsSnapshot() []*MSWNode {
	n.accessGuard.Lock()
	snapshot := make([]*MSWNode, len(n.friends))
	copy(snapshot, n.friends)
	n.accessGuard.Unlock()
	return snapshot
}

func (n *MSWNode) addFriend(f *MSWNode) {
	n.accessGuard.Lock()
	n.friends = append(n.friends, f)
	n.accessGuard.Unlock()
}

func (n *MSWNode) removeAllFriends() {
	n.accessGuard.Lock()
	n.friends = nil
	n.accessGuard.Unlock()
}

// link connects two nodes symmetrically. Each append takes only that node's
// guard, one at a time; the two appends are not atomic together, and walkers
// tolerate the asymmetric window in between.
func link(a, b *MSWNode) {
	a.addFriend(b)
	b.addFriend(a)
}
