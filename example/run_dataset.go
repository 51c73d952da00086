package example

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/patrikhermansson/swann/core"
)

// IndexFactory creates a new index together with the space it searches.
// The space is needed to form queries against the built index.
type IndexFactory func() (core.Index, core.Space)

// QueryResult holds the results for a single query.
type QueryResult struct {
	idx         int
	recall      float64
	duration    time.Duration
	predicted   string
	groundTruth string
}

// RunDataset loads the dataset from the specified directory, builds the index
// using the provided factory, and runs kNN queries on a subset of test
// queries. If numQueries is negative or exceeds the number of available test
// vectors, all test vectors are used and benchmark mode is activated: a
// progress bar replaces the per-query output. It computes Recall@k along with
// per-query response times, average response time, and overall runtime.
// The number of query worker threads is read from the SWANN_BENCH_NTRD
// environment variable.
func RunDataset(factory IndexFactory, dataset, root string, k, numQueries, maxResults int) {
	datasetPath := filepath.Join(root, dataset)
	fmt.Printf("Loading dataset: %s\n", dataset)
	overallStart := time.Now()

	// Create the index.
	index, space := factory()
	fmt.Printf("Created index: %s (%T)\n", index.Name(), index)

	// Load training vectors and build the index over them.
	trainingPoints, err := LoadTrainingElements(datasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load training vectors")
	}
	if err := index.Build(trainingPoints); err != nil {
		log.Fatal().Err(err).Msg("Build failed")
	}

	// Load test dataset.
	testVectors, gtNeighbors, gtDistances, err := LoadTestDataset(datasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load test dataset")
	}
	log.Info().Msgf("Loaded %d test vectors", len(testVectors))

	stats := index.Stats()
	fmt.Printf("Indexed %d vectors (%d graph edges) in %.2fs\n",
		stats.Count, stats.Edges, time.Since(overallStart).Seconds())

	// Activate benchmark mode if numQueries is negative or too high.
	benchmarkMode := false
	if numQueries < 0 || numQueries > len(testVectors) {
		numQueries = len(testVectors)
		benchmarkMode = true
	}

	// Get the number of threads from SWANN_BENCH_NTRD.
	threads := 1
	if env := os.Getenv("SWANN_BENCH_NTRD"); env != "" {
		if t, err := strconv.Atoi(env); err == nil && t > 0 {
			threads = t
			log.Info().Msgf("Using %d threads for benchmarking", threads)
		}
	}

	fmt.Printf("Running kNN queries (k=%d) on %d test vectors using %d threads\n", k, numQueries, threads)

	var totalRecall float64
	var totalQueryTime time.Duration

	// Pre-allocate a slice to hold query results.
	resultsSlice := make([]QueryResult, numQueries)

	// Set up a progress bar if in benchmark mode.
	var bar *progressbar.ProgressBar
	if benchmarkMode {
		bar = progressbar.Default(int64(numQueries))
	}

	// Create a channel to feed query indices.
	tasks := make(chan int, numQueries)
	var wg sync.WaitGroup

	// Worker function: processes queries from the task channel. Concurrent
	// read-only queries against the built index need no extra locking.
	worker := func() {
		defer wg.Done()
		for idx := range tasks {
			query := core.NewKNNQuery(space, &core.Element{ID: -1, Vector: testVectors[idx]}, k)
			startQuery := time.Now()
			if err := index.KNNSearch(query); err != nil {
				log.Fatal().Err(err).Msgf("Search error on query %d", idx)
			}
			duration := time.Since(startQuery)
			res := query.Results()
			recall := RecallAtK(res, gtNeighbors[idx], k)

			var predicted, groundTruth string
			if !benchmarkMode {
				predicted = FormatResults(res, maxResults)
				groundTruth = FormatGroundTruth(gtNeighbors[idx], gtDistances[idx], k, maxResults)
			}

			resultsSlice[idx] = QueryResult{
				idx:         idx,
				recall:      recall,
				duration:    duration,
				predicted:   predicted,
				groundTruth: groundTruth,
			}

			if benchmarkMode && bar != nil {
				if err := bar.Add(1); err != nil {
					return
				}
			}
		}
	}

	// Start worker goroutines.
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go worker()
	}

	// Feed query indices into the task channel.
	for i := 0; i < numQueries; i++ {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	// Aggregate the results.
	for _, res := range resultsSlice {
		totalRecall += res.recall
		totalQueryTime += res.duration
	}

	avgRecall := totalRecall / float64(numQueries)
	avgResponseTime := totalQueryTime / time.Duration(numQueries)

	// If not benchmarking, print each query's details.
	if !benchmarkMode {
		for i, res := range resultsSlice {
			fmt.Printf("Query #%d:\n", i+1)
			fmt.Printf(" -> Predicted:     %s\n", res.predicted)
			fmt.Printf(" -> Ground-truth:  %s\n", res.groundTruth)
			fmt.Printf(" -> Recall@%d:     %.2f, Response time: %v\n", k, res.recall, res.duration)
		}
	}

	fmt.Printf("Average Recall@%d over %d queries: %.2f\n", k, numQueries, avgRecall)
	fmt.Printf("Average query response time: %v\n", avgResponseTime)
	fmt.Printf("Overall runtime: %v\n", time.Since(overallStart))
}
