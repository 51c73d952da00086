package core

import (
	"container/heap"
	"sort"
)

// neighborMaxHeap keeps the worst retained neighbor on top so it can be
// evicted when a better candidate arrives.
type neighborMaxHeap []Neighbor

func (h neighborMaxHeap) Len() int            { return len(h) }
func (h neighborMaxHeap) Less(i, j int) bool  { return h[i].Distance > h[j].Distance }
func (h neighborMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborMaxHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *neighborMaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// KNNQuery is the standard k-nearest-neighbor query: it computes distances
// through a Space and retains the k nearest offered points. Duplicate offers
// of the same point are ignored, so the offered points must be comparable.
//
// A KNNQuery is not safe for concurrent use; run one query per goroutine.
type KNNQuery struct {
	space  Space
	point  Point
	k      int
	result neighborMaxHeap
	seen   map[Point]struct{}
}

// NewKNNQuery creates a query for the k nearest neighbors of point.
func NewKNNQuery(space Space, point Point, k int) *KNNQuery {
	return &KNNQuery{
		space: space,
		point: point,
		k:     k,
		seen:  make(map[Point]struct{}),
	}
}

// Point returns the query point.
func (q *KNNQuery) Point() Point { return q.point }

// DistanceTo computes the distance from the query point to p.
func (q *KNNQuery) DistanceTo(p Point) float64 {
	return q.space.Distance(q.point, p)
}

// ResultCapacity returns k.
func (q *KNNQuery) ResultCapacity() int { return q.k }

// Offer records a candidate point. The worst retained neighbor is evicted
// when the query is at capacity and the candidate improves on it.
func (q *KNNQuery) Offer(dist float64, p Point) {
	if q.k <= 0 {
		return
	}
	if _, ok := q.seen[p]; ok {
		return
	}
	if len(q.result) < q.k {
		q.seen[p] = struct{}{}
		heap.Push(&q.result, Neighbor{Point: p, Distance: dist})
		return
	}
	if dist < q.result[0].Distance {
		evicted := heap.Pop(&q.result).(Neighbor)
		delete(q.seen, evicted.Point)
		q.seen[p] = struct{}{}
		heap.Push(&q.result, Neighbor{Point: p, Distance: dist})
	}
}

// Results returns the retained neighbors sorted by ascending distance.
func (q *KNNQuery) Results() []Neighbor {
	out := make([]Neighbor, len(q.result))
	copy(out, q.result)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// Check interface compliance at compile time.
var _ Query = (*KNNQuery)(nil)
