package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/dataset"
	"github.com/pkg/errors"
)

// FileDatasetLoader reads, cleans and splits a CSV file each time rows are requested.
type FileDatasetLoader struct {
	Path          string
	Schema        data.Schema
	TrainFraction float64

	// Seed fixes the split; zero picks a new split on every load.
	Seed int64
}

func (dl *FileDatasetLoader) LoadRows(ctx context.Context) (training, test []data.Row, err error) {
	f, err := os.Open(dl.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loadRows couldn't open dataset")
	}
	defer f.Close()

	rows, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, nil, err
	}
	if err := dataset.Clean(rows, dl.Schema); err != nil {
		return nil, nil, err
	}

	seed := dl.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return dataset.Split(rows, dl.TrainFraction, rand.New(rand.NewSource(seed)))
}
