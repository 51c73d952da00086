//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/swann/core"
	"github.com/patrikhermansson/swann/msw"
)

// Note: the graph layout depends on the seed; set the "seed" option (or
// SWANN_SEED) and keep indexThreadQty at 1 for reproducible builds.

func main() {

	// Set the logger to output to the console.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Index parameters.
	distanceName := "euclidean"
	space := core.NewVectorSpace(distanceName)

	// Create an MSW index with the given parameters.
	index, err := msw.NewMSW(space, msw.Params{
		"NN":                 3,
		"initIndexAttempts":  2,
		"initSearchAttempts": 5,
		"indexThreadQty":     1,
		"seed":               int64(42),
	})
	if err != nil {
		log.Fatal().Msgf("NewMSW failed: %v", err)
	}
	fmt.Println("Created new MSW index:", index.Name())

	// Build the index over a few vectors.
	fmt.Println("Building index...")
	vectors := [][]float32{
		{1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1},
		{1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2},
		{3, 3, 3, 3, 3, 3},
		{4, 4, 4, 4, 4, 4},
		{5, 5, 5, 5, 5, 5},
		{6, 6, 6, 6, 6, 6},
		{7, 7, 7, 7, 7, 7},
		{8, 8, 8, 8, 8, 8},
	}
	points := make([]core.Point, len(vectors))
	for id, vec := range vectors {
		points[id] = &core.Element{ID: id, Vector: vec}
	}
	if err := index.Build(points); err != nil {
		log.Fatal().Msgf("Build failed: %v", err)
	}
	fmt.Printf("Index stats after Build: %+v\n", index.Stats())

	// Search for the nearest neighbors of a query vector.
	queryVec := []float32{1, 2, 3, 4, 5, 6}
	fmt.Println("Searching nearest neighbors for vector:", queryVec)
	query := core.NewKNNQuery(space, &core.Element{ID: -1, Vector: queryVec}, 2)
	if err := index.KNNSearch(query); err != nil {
		log.Fatal().Msgf("Search failed: %v", err)
	}
	fmt.Println("Search results:")
	for _, n := range query.Results() {
		fmt.Printf("ID: %d, Distance: %f\n", n.Point.(*core.Element).ID, n.Distance)
	}

	// Range queries are not supported by this method.
	if err := index.RangeSearch(&core.RangeQuery{Point: points[0], Radius: 1.0}); err != nil {
		fmt.Println("Range search:", err)
	}

	// Loosen the query-time budget and search again.
	if err := index.SetQueryTimeParams(msw.Params{"initSearchAttempts": 10}); err != nil {
		log.Fatal().Msgf("SetQueryTimeParams failed: %v", err)
	}
	query = core.NewKNNQuery(space, &core.Element{ID: -1, Vector: queryVec}, 3)
	if err := index.KNNSearch(query); err != nil {
		log.Fatal().Msgf("Search failed: %v", err)
	}
	fmt.Println("Search results with initSearchAttempts=10:")
	for _, n := range query.Results() {
		fmt.Printf("ID: %d, Distance: %f\n", n.Point.(*core.Element).ID, n.Distance)
	}
}
