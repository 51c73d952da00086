package core

import "testing"

func TestVectorSpaceDistances(t *testing.T) {
	space := NewVectorSpace("euclidean")
	a := &Element{ID: 1, Vector: []float32{0, 0}}
	b := &Element{ID: 2, Vector: []float32{3, 4}}

	if d := space.IndexTimeDistance(a, b); !almostEqual(d, 5, 1e-6) {
		t.Errorf("IndexTimeDistance = %v; want 5", d)
	}
	if d := space.Distance(a, b); !almostEqual(d, 5, 1e-6) {
		t.Errorf("Distance = %v; want 5", d)
	}
}

func TestVectorSpaceUnknownNameFallsBack(t *testing.T) {
	space := NewVectorSpace("no_such_metric")
	if space.Name != "euclidean" {
		t.Errorf("Name = %q; want fallback to euclidean", space.Name)
	}
}
