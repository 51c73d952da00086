//go:build ignore
// +build ignore

package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/swann/core"
	"github.com/patrikhermansson/swann/example"
	"github.com/patrikhermansson/swann/msw"
)

func main() {
	// Set the logger to output to the console.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Start the pprof HTTP server on port 6060.
	// This will expose profiling endpoints at /debug/pprof/
	go func() {
		log.Info().Msg("Starting pprof server on :6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			log.Error().Err(err).Msg("pprof server failed")
		}
	}()

	// Benchmarking the MSW index with FashionMNIST and Glove25 datasets
	BenchMSWIndexFashionMNIST()
	BenchMSWIndexGlove25()
}

func BenchMSWIndexFashionMNIST() {
	factory := func() (core.Index, core.Space) {
		space := core.NewVectorSpace("euclidean")
		index, err := msw.NewMSW(space, msw.Params{
			"NN":                 32,
			"initIndexAttempts":  2,
			"initSearchAttempts": 15,
			"printProgress":      true,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create MSW index")
		}
		return index, space
	}

	example.RunDataset(factory, "fashion-mnist-784-euclidean",
		"example/data/nearest-neighbors-datasets", 100, -1, 5)
}

func BenchMSWIndexGlove25() {
	factory := func() (core.Index, core.Space) {
		space := core.NewVectorSpace("cosine")
		index, err := msw.NewMSW(space, msw.Params{
			"NN":                 32,
			"initIndexAttempts":  2,
			"initSearchAttempts": 15,
			"printProgress":      true,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create MSW index")
		}
		return index, space
	}

	example.RunDataset(factory, "glove-25-angular",
		"example/data/nearest-neighbors-datasets", 100, -1, 5)
}
