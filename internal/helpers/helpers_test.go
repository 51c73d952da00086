package helpers

import (
	"testing"

	"github.com/patrikhermansson/swann/core"
)

func TestBruteForceKNN(t *testing.T) {
	elements := []*core.Element{
		{ID: 0, Vector: []float32{0}},
		{ID: 1, Vector: []float32{1}},
		{ID: 2, Vector: []float32{2}},
		{ID: 3, Vector: []float32{3}},
	}

	neighbors := BruteForceKNN(elements, []float32{1.2}, 2, core.Euclidean)
	if len(neighbors) != 2 {
		t.Fatalf("len(neighbors) = %d; want 2", len(neighbors))
	}
	ids := IDs(neighbors)
	if ids[0] != 1 || ids[1] != 2 {
		t.Errorf("IDs = %v; want [1 2]", ids)
	}
}

func TestBruteForceKNNSmallerThanK(t *testing.T) {
	elements := []*core.Element{{ID: 0, Vector: []float32{0}}}
	neighbors := BruteForceKNN(elements, []float32{5}, 3, core.Euclidean)
	if len(neighbors) != 1 {
		t.Errorf("len(neighbors) = %d; want 1", len(neighbors))
	}
}
