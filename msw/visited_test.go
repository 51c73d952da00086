package msw

import "testing"

func TestVisitedSetMarking(t *testing.T) {
	v := newVisitedSet(8)

	if v.visited(3) {
		t.Error("fresh set reports index 3 as visited")
	}
	v.visit(3)
	if !v.visited(3) {
		t.Error("index 3 not visited after visit")
	}
}

func TestVisitedSetBeyondSnapshot(t *testing.T) {
	v := newVisitedSet(8)

	// Nodes published after the snapshot (or never published) cannot be
	// marked and always read as unvisited.
	v.visit(8)
	if v.visited(8) {
		t.Error("index at the snapshot boundary must stay unvisited")
	}
	v.visit(unassignedIndex)
	if v.visited(unassignedIndex) {
		t.Error("sentinel index must stay unvisited")
	}
}

func TestVisitedSetEmptySnapshot(t *testing.T) {
	v := newVisitedSet(0)
	v.visit(0)
	if v.visited(0) {
		t.Error("empty snapshot must not mark anything")
	}
}
