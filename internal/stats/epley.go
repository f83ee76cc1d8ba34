// Package stats implements the pure aggregation core: one-rep-max
// estimation, per-lift progress series, and daily activity buckets.
package stats

import "math"

// EstimateOneRepMax returns the estimated maximal single-rep weight for a
// set of reps at weight, using the Epley relation w * (1 + r/30).
//
// A true single (reps == 1) returns weight exactly, with no extrapolation
// error. Other results round to the nearest integer, ties rounding half
// away from zero. Callers must guarantee weight > 0 and reps >= 1.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	return math.Round(weight * (1 + float64(reps)/30))
}
