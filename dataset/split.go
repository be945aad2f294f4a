package dataset

import (
	"math"
	"math/rand"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
)

// Split shuffles rows and returns the first trainFraction of them as training rows
// and the remainder as test rows. The input slice is not modified.
func Split(rows []data.Row, trainFraction float64, rng *rand.Rand) (train, test []data.Row, err error) {
	if !(trainFraction > 0 && trainFraction < 1) {
		return nil, nil, errors.Errorf("split fraction must be between 0 and 1, was %g", trainFraction)
	}

	shuffled := append([]data.Row(nil), rows...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := int(math.Round(trainFraction * float64(len(shuffled))))
	return shuffled[:n], shuffled[n:], nil
}
