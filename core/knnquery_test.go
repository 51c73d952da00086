package core

import (
	"testing"
)

func newTestQuery(k int) (*KNNQuery, *Element) {
	space := NewVectorSpace("euclidean")
	point := &Element{ID: -1, Vector: []float32{0}}
	return NewKNNQuery(space, point, k), point
}

func TestKNNQueryCapacityAndOrder(t *testing.T) {
	q, _ := newTestQuery(2)

	a := &Element{ID: 1, Vector: []float32{3}}
	b := &Element{ID: 2, Vector: []float32{1}}
	c := &Element{ID: 3, Vector: []float32{2}}

	q.Offer(3, a)
	q.Offer(1, b)
	q.Offer(2, c)

	results := q.Results()
	if len(results) != 2 {
		t.Fatalf("len(results) = %d; want 2", len(results))
	}
	if results[0].Point != Point(b) || results[1].Point != Point(c) {
		t.Errorf("results = %v; want [b c] sorted by distance", results)
	}
	if results[0].Distance != 1 || results[1].Distance != 2 {
		t.Errorf("distances = %v, %v; want 1, 2", results[0].Distance, results[1].Distance)
	}
}

func TestKNNQueryNoImprovementIgnored(t *testing.T) {
	q, _ := newTestQuery(1)

	a := &Element{ID: 1}
	b := &Element{ID: 2}

	q.Offer(1, a)
	q.Offer(5, b) // worse than the retained result, at capacity

	results := q.Results()
	if len(results) != 1 || results[0].Point != Point(a) {
		t.Errorf("results = %v; want only a", results)
	}
}

func TestKNNQueryDeduplicates(t *testing.T) {
	q, _ := newTestQuery(3)

	a := &Element{ID: 1}
	q.Offer(1, a)
	q.Offer(1, a)
	q.Offer(1, a)

	if results := q.Results(); len(results) != 1 {
		t.Errorf("len(results) = %d after duplicate offers; want 1", len(results))
	}
}

func TestKNNQueryZeroCapacity(t *testing.T) {
	q, _ := newTestQuery(0)
	q.Offer(1, &Element{ID: 1})
	if results := q.Results(); len(results) != 0 {
		t.Errorf("results = %v for k=0; want empty", results)
	}
}

func TestKNNQueryDistanceTo(t *testing.T) {
	q, _ := newTestQuery(1)
	d := q.DistanceTo(&Element{ID: 1, Vector: []float32{4}})
	if !almostEqual(d, 4, 1e-6) {
		t.Errorf("DistanceTo = %v; want 4", d)
	}
	if q.ResultCapacity() != 1 {
		t.Errorf("ResultCapacity() = %d; want 1", q.ResultCapacity())
	}
}
