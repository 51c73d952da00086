package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/swann/core"
	"github.com/patrikhermansson/swann/internal/helpers"
	"github.com/patrikhermansson/swann/msw"
)

const (
	numVectors = 5000
	dimension  = 16
	numQueries = 100
	k          = 10
)

// Execute runs the demo driver: it builds a small-world index over random
// vectors and reports Recall@k against a brute-force scan.
func Execute() {
	seed := core.GetSeed()
	rng := rand.New(rand.NewSource(seed))

	elements := make([]*core.Element, numVectors)
	points := make([]core.Point, numVectors)
	for i := range elements {
		vec := make([]float32, dimension)
		for d := range vec {
			vec[d] = rng.Float32()
		}
		elements[i] = &core.Element{ID: i, Vector: vec}
		points[i] = elements[i]
	}

	space := core.NewVectorSpace("euclidean")
	index, err := msw.NewMSW(space, msw.Params{
		"NN":            10,
		"seed":          seed,
		"printProgress": true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create index")
	}

	fmt.Printf("Building %s index over %d vectors (%d dimensions)\n",
		index.Name(), numVectors, dimension)
	start := time.Now()
	if err := index.Build(points); err != nil {
		log.Fatal().Err(err).Msg("Build failed")
	}
	stats := index.Stats()
	fmt.Printf("Built in %.2fs: %d nodes, %d edges\n",
		time.Since(start).Seconds(), stats.Count, stats.Edges)

	fmt.Printf("Running %d held-out queries (k=%d)\n", numQueries, k)
	var totalRecall float64
	queryStart := time.Now()
	for i := 0; i < numQueries; i++ {
		vec := make([]float32, dimension)
		for d := range vec {
			vec[d] = rng.Float32()
		}

		query := core.NewKNNQuery(space, &core.Element{ID: -1, Vector: vec}, k)
		if err := index.KNNSearch(query); err != nil {
			log.Fatal().Err(err).Msgf("Search error on query %d", i)
		}

		exact := helpers.BruteForceKNN(elements, vec, k, core.Euclidean)
		exactIDs := helpers.IDs(exact)

		predSet := make(map[int]struct{})
		for _, id := range helpers.IDs(query.Results()) {
			predSet[id] = struct{}{}
		}
		correct := 0
		for _, id := range exactIDs {
			if _, ok := predSet[id]; ok {
				correct++
			}
		}
		totalRecall += float64(correct) / float64(len(exactIDs))
	}
	fmt.Printf("Average Recall@%d: %.3f\n", k, totalRecall/numQueries)
	fmt.Printf("Average query time: %v\n", time.Since(queryStart)/numQueries)
}
