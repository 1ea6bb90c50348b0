// Package metrics provides the pure numeric helpers used to stabilize and
// normalize benchmark measurements.
package metrics

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean of values.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the population standard deviation of values around mean.
func StdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Median returns the middle element of the sorted values, averaging the two
// central elements for an even count. The input slice is not modified.
// Returns 0 for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Summary describes the cohort a z-score was computed against.
type Summary struct {
	Mean   float64
	StdDev float64
}

// ZScores computes the standard score of every entry relative to the whole
// set. When the standard deviation is zero every score is 0. Values are
// summed in key order so the result does not depend on map iteration.
func ZScores(values map[string]float64) (map[string]float64, Summary) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	all := make([]float64, 0, len(values))
	for _, key := range keys {
		all = append(all, values[key])
	}
	mean := Mean(all)
	sd := StdDev(all, mean)

	scores := make(map[string]float64, len(values))
	for key, v := range values {
		if sd == 0 {
			scores[key] = 0
			continue
		}
		scores[key] = (v - mean) / sd
	}
	return scores, Summary{Mean: mean, StdDev: sd}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
