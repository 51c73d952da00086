package helpers

import (
	"sort"

	"github.com/patrikhermansson/swann/core"
)

// BruteForceKNN scans all elements and returns the k nearest to the query
// vector, sorted by ascending distance. It is the exact-search harness the
// approximate index is measured against.
func BruteForceKNN(elements []*core.Element, query []float32, k int, distance core.DistanceFunc) []core.Neighbor {
	neighbors := make([]core.Neighbor, 0, len(elements))
	for _, el := range elements {
		neighbors = append(neighbors, core.Neighbor{
			Point:    el,
			Distance: distance(query, el.Vector),
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// IDs extracts the element ids from a neighbor list.
func IDs(neighbors []core.Neighbor) []int {
	ids := make([]int, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.Point.(*core.Element).ID
	}
	return ids
}
