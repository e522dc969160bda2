package filter

import "gonum.org/v1/gonum/stat"

// DeadBand flattens micro-noise: every sample whose absolute deviation
// from the series mean is at or below the threshold is replaced by the
// mean. Length is preserved; an empty series passes through.
func DeadBand(x []float64, threshold float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	mean := stat.Mean(x, nil)
	for i, v := range x {
		d := v - mean
		if d < 0 {
			d = -d
		}
		if d <= threshold {
			out[i] = mean
		} else {
			out[i] = v
		}
	}
	return out
}
