package example

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/swann/core"
)

// LoadTrainingElements reads train.csv from the dataset directory into
// elements with 0-based ids, matching the ground-truth numbering.
func LoadTrainingElements(dir string) ([]core.Point, error) {
	trainPath := filepath.Join(dir, "train.csv")
	log.Info().Msgf("Loading training data from: %s", trainPath)

	vectors, err := readCSV[float32](trainPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load train.csv: %w", err)
	}

	points := make([]core.Point, len(vectors))
	for id, vec := range vectors {
		points[id] = &core.Element{ID: id, Vector: vec}
	}
	log.Info().Msgf("Loaded %d training vectors", len(points))
	return points, nil
}

// LoadTestDataset loads the query side of a dataset directory:
//   - test.csv        (query vectors, not added to the index)
//   - neighbors.csv   (expected neighbor IDs per query)
//   - distances.csv   (expected distances per query)
func LoadTestDataset(dir string) (
	testVectors [][]float32,
	trueNeighbors [][]int,
	trueDistances [][]float64,
	err error,
) {
	testPath := filepath.Join(dir, "test.csv")
	neighborsPath := filepath.Join(dir, "neighbors.csv")
	distancesPath := filepath.Join(dir, "distances.csv")

	log.Info().Msgf("Loading test data from: %s", testPath)
	testVectors, err = readCSV[float32](testPath, false)
	if err != nil {
		return nil, nil, nil,
			fmt.Errorf("failed to load test.csv: %w", err)
	}

	log.Info().Msgf("Loading ground-truth neighbors from: %s", neighborsPath)
	trueNeighbors, err = readCSV[int](neighborsPath, false)
	if err != nil {
		return nil, nil, nil,
			fmt.Errorf("failed to load neighbors.csv: %w", err)
	}

	log.Info().Msgf("Loading ground-truth distances from: %s", distancesPath)
	trueDistances, err = readCSV[float64](distancesPath, false)
	if err != nil {
		return nil, nil, nil,
			fmt.Errorf("failed to load distances.csv: %w", err)
	}

	log.Info().Msg("Dataset loaded successfully")
	return testVectors, trueNeighbors, trueDistances, nil
}

// readCSV is a generic CSV reader for types: int, float32, and float64.
func readCSV[T int | float32 | float64](path string, skipHeader bool) ([][]T, error) {
	log.Debug().Msgf("Opening CSV file: %s", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var result [][]T

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error in %s: %w", path, err)
		}
		if skipHeader {
			skipHeader = false
			continue
		}
		row := make([]T, len(record))
		for i, val := range record {
			parsed, err := parseValue[T](val)
			if err != nil {
				return nil, fmt.Errorf("parse error at col %d in %s: %w", i, path, err)
			}
			row[i] = parsed
		}
		result = append(result, row)
	}
	return result, nil
}

// parseValue converts a CSV field into the requested numeric type.
func parseValue[T int | float32 | float64](val string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int:
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return zero, err
		}
		return any(parsed).(T), nil
	case float32:
		parsed, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return zero, err
		}
		return any(float32(parsed)).(T), nil
	case float64:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return zero, err
		}
		return any(parsed).(T), nil
	default:
		return zero, fmt.Errorf("unsupported type %T", zero)
	}
}
