package msw

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/patrikhermansson/swann/core"
)

// Concurrent read-only queries against a built index need no extra locking.
func TestConcurrentQueries(t *testing.T) {
	const n = 300
	rng := rand.New(rand.NewSource(41))
	_, points := randomElements(n, 8, rng)

	space := core.NewVectorSpace("euclidean")
	index, err := NewMSW(space, Params{"NN": 6, "indexThreadQty": 4, "seed": int64(41)})
	if err != nil {
		t.Fatalf("NewMSW failed: %v", err)
	}
	if err := index.Build(points); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	queries := make([][]float32, 32)
	for i := range queries {
		vec := make([]float32, 8)
		for d := range vec {
			vec[d] = rng.Float32()
		}
		queries[i] = vec
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(queries))
	for _, vec := range queries {
		wg.Add(1)
		go func(vec []float32) {
			defer wg.Done()
			query := core.NewKNNQuery(space, &core.Element{ID: -1, Vector: vec}, 5)
			if err := index.KNNSearch(query); err != nil {
				errs <- err
				return
			}
			if len(query.Results()) == 0 {
				errs <- errEmptyResult
			}
		}(vec)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent query failed: %v", err)
	}
}

var errEmptyResult = errors.New("query returned no results")
