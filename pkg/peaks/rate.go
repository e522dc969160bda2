package peaks

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Rate is the events-per-minute estimate for one detected peak set. BPM is
// meaningful only when Defined is true; the peak count is always reported.
type Rate struct {
	PeakCount int
	BPM       float64
	Defined   bool
}

// String renders the rate for display, "undefined" when too few peaks.
func (r Rate) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.1f BPM", r.BPM)
}

// EstimateRate converts peak indices and the parallel time axis into an
// average rate: the arithmetic mean of 60/Δt over consecutive peak times.
// With fewer than two peaks the rate is undefined, never fabricated.
func EstimateRate(peakIdx []int, timeAxis []float64) Rate {
	r := Rate{PeakCount: len(peakIdx)}
	if len(peakIdx) < 2 {
		return r
	}

	rates := make([]float64, 0, len(peakIdx)-1)
	for i := 1; i < len(peakIdx); i++ {
		dt := timeAxis[peakIdx[i]] - timeAxis[peakIdx[i-1]]
		if dt <= 0 {
			continue
		}
		rates = append(rates, 60.0/dt)
	}
	if len(rates) == 0 {
		return r
	}

	r.BPM = stat.Mean(rates, nil)
	r.Defined = true
	return r
}
