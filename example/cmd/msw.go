//go:build ignore
// +build ignore

package main

import (
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

	// Using the MSW index with FashionMNIST and Glove25 datasets
	MSWIndexFashionMNIST("euclidean")
	MSWIndexGlove25("cosine")
}

func MSWIndexFashionMNIST(distanceName string) {
	factory := func() (core.Index, core.Space) {
		space := core.NewVectorSpace(distanceName)
		index, err := msw.NewMSW(space, msw.Params{
			"NN":                 16,
			"initIndexAttempts":  2,
			"initSearchAttempts": 10,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create MSW index")
		}
		return index, space
	}

	example.RunDataset(factory, "fashion-mnist-784-euclidean",
		"example/data/nearest-neighbors-datasets", 100, 5, 5)
}

func MSWIndexGlove25(distanceName string) {
	factory := func() (core.Index, core.Space) {
		space := core.NewVectorSpace(distanceName)
		index, err := msw.NewMSW(space, msw.Params{
			"NN":                 16,
			"initIndexAttempts":  2,
			"initSearchAttempts": 10,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create MSW index")
		}
		return index, space
	}

	example.RunDataset(factory, "glove-25-angular",
		"example/data/nearest-neighbors-datasets", 100, 5, 5)
}
