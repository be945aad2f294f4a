package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseThresholds parses a comma-separated list of maximum uncertainties.
// Empty entries are skipped; NaN and infinite values are rejected.
func ParseThresholds(s string) ([]float64, error) {
	var thresholds []float64
	for _, thresholdStr := range strings.Split(s, ",") {
		thresholdStr = strings.TrimSpace(thresholdStr)
		if thresholdStr == "" {
			continue
		}

		threshold, err := strconv.ParseFloat(thresholdStr, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid threshold %q", thresholdStr)
		}
		if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return nil, errors.Errorf("threshold %q is not a finite number", thresholdStr)
		}
		thresholds = append(thresholds, threshold)
	}
	return thresholds, nil
}
