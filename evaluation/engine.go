package evaluation

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidInput is the cause of every error returned by Evaluate.
var ErrInvalidInput = errors.New("invalid input")

// Outcome is the result of a single held-out prediction.
type Outcome struct {
	IsCorrect   bool
	Uncertainty float64
}

// Report summarises a set of outcomes at one maximum uncertainty threshold.
// Outcomes with an uncertainty at or below the threshold are known; the rest are unknown.
type Report struct {
	Threshold         float64
	KnownCount        int
	KnownCorrectCount int
	UnknownCount      int
}

// Total is the number of outcomes the report was computed over.
func (r Report) Total() int {
	return r.KnownCount + r.UnknownCount
}

// Accuracy returns the fraction of known outcomes that were correct.
// ok is false when no outcome was known, in which case accuracy is undefined.
func (r Report) Accuracy() (accuracy float64, ok bool) {
	if r.KnownCount == 0 {
		return 0, false
	}
	return float64(r.KnownCorrectCount) / float64(r.KnownCount), true
}

// IgnoredFraction returns the fraction of outcomes that were unknown.
func (r Report) IgnoredFraction() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.UnknownCount) / float64(r.Total())
}

// Coverage returns the fraction of outcomes that were known.
func (r Report) Coverage() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.KnownCount) / float64(r.Total())
}

// Evaluate produces one report per threshold, in the order the thresholds were given.
// Either every report is produced or an error wrapping ErrInvalidInput is returned.
func Evaluate(outcomes []Outcome, thresholds []float64) ([]Report, error) {
	if len(outcomes) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "evaluate got no outcomes")
	}
	for i, o := range outcomes {
		if math.IsNaN(o.Uncertainty) || math.IsInf(o.Uncertainty, 0) {
			return nil, errors.Wrapf(ErrInvalidInput, "outcome %d has non-finite uncertainty %g", i, o.Uncertainty)
		}
		if o.Uncertainty < 0 {
			return nil, errors.Wrapf(ErrInvalidInput, "outcome %d has negative uncertainty %g", i, o.Uncertainty)
		}
	}
	for i, t := range thresholds {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, errors.Wrapf(ErrInvalidInput, "threshold %d is non-finite: %g", i, t)
		}
	}

	reports := make([]Report, 0, len(thresholds))
	for _, t := range thresholds {
		r := Report{Threshold: t}
		for _, o := range outcomes {
			if o.Uncertainty > t {
				r.UnknownCount++
				continue
			}
			r.KnownCount++
			if o.IsCorrect {
				r.KnownCorrectCount++
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}
