// Package spectral computes the one-sided magnitude spectrum and the
// derived resonance/energy metrics for a single captured burst.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// epsilon keeps the dB conversion away from -infinity on empty bins.
const epsilon = 1e-12

// Record holds everything derived from one burst. It is immutable once
// computed; a session accumulates one Record per burst.
type Record struct {
	Label string

	Voltage []float64 // dead-banded series, mV
	Freq    []float64 // Hz, one per retained bin
	MagDB   []float64 // magnitude in dB, normalized so the peak bin is 0

	TotalEnergy  float64 // sum of |X|^2 over retained bins
	ResonanceHz  float64 // frequency of the strongest bin
	PeakToPeakMV float64 // max - min of the voltage series
	PeakMV       float64 // sample of greatest absolute deviation
	PeakTime     float64 // its offset from burst start, seconds
}

// Analyze windows one burst and derives its spectrum and metrics. The
// voltage series is expected to be dead-band filtered already. Analyze is
// pure: same series and rate in, bit-identical Record out.
func Analyze(v []float64, fs float64) Record {
	rec := Record{Voltage: v}
	n := len(v)
	if n < 2 {
		return rec
	}

	// Remove DC and taper with a Hann window to limit spectral leakage.
	mean := stat.Mean(v, nil)
	x := make([]float64, n)
	copy(x, v)
	for i := range x {
		x[i] -= mean
	}
	window.Apply(x, window.Hann)

	// One-sided spectrum: DC through just below Nyquist.
	bins := fft.FFTReal(x)[:n/2]

	magLin := make([]float64, len(bins))
	rec.Freq = make([]float64, len(bins))
	rec.MagDB = make([]float64, len(bins))
	for i, b := range bins {
		abs := cmplx.Abs(b)
		magLin[i] = abs / float64(n)
		rec.TotalEnergy += abs * abs
		rec.Freq[i] = float64(i) * fs / float64(n)
		rec.MagDB[i] = 20 * math.Log10(magLin[i]+epsilon)
	}

	// Normalize so the strongest bin sits at 0 dB.
	peak := floats.Max(rec.MagDB)
	for i := range rec.MagDB {
		rec.MagDB[i] -= peak
	}

	rec.ResonanceHz = rec.Freq[floats.MaxIdx(magLin)]
	rec.PeakToPeakMV = floats.Max(v) - floats.Min(v)

	peakIdx := 0
	for i, s := range v {
		if math.Abs(s) > math.Abs(v[peakIdx]) {
			peakIdx = i
		}
	}
	rec.PeakMV = v[peakIdx]
	rec.PeakTime = float64(peakIdx) / fs

	return rec
}
