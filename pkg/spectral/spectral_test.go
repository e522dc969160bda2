package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sine returns n samples of amp*sin(2*pi*f0*t) at rate fs.
func sine(n int, fs, f0, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*f0*float64(i)/fs)
	}
	return x
}

func TestAnalyzePureTone(t *testing.T) {
	// 50 Hz lands exactly on bin 50 of a 1000-point transform at 1 kHz.
	const (
		n   = 1000
		fs  = 1000.0
		f0  = 50.0
		amp = 120.0
	)
	rec := Analyze(sine(n, fs, f0, amp), fs)

	require.Len(t, rec.Freq, n/2)
	require.Len(t, rec.MagDB, n/2)

	assert.InDelta(t, f0, rec.ResonanceHz, 1e-9)

	// The normalized spectrum peaks at exactly 0 dB on the tone's bin.
	assert.InDelta(t, 0, rec.MagDB[50], 1e-9)
	for i, db := range rec.MagDB {
		assert.LessOrEqual(t, db, 1e-9, "bin %d", i)
	}

	// 20 samples per period, so the quarter-period sample hits ±amp exactly.
	assert.InDelta(t, 2*amp, rec.PeakToPeakMV, 1e-9)
	assert.InDelta(t, amp, rec.PeakMV, 1e-9)
	assert.InDelta(t, 5.0/fs, rec.PeakTime, 1e-9)

	assert.Greater(t, rec.TotalEnergy, 0.0)
}

func TestAnalyzeFrequencyAxis(t *testing.T) {
	const (
		n  = 200
		fs = 10000.0
	)
	rec := Analyze(sine(n, fs, 500, 1), fs)

	require.Len(t, rec.Freq, n/2)
	assert.Equal(t, 0.0, rec.Freq[0])
	assert.InDelta(t, fs/float64(n), rec.Freq[1], 1e-9)
	assert.InDelta(t, fs/2-fs/float64(n), rec.Freq[n/2-1], 1e-9)
}

// Resonance estimation must not be fooled by a DC offset: the offset is
// removed before the transform.
func TestAnalyzeIgnoresDC(t *testing.T) {
	const (
		n  = 1000
		fs = 1000.0
		f0 = 50.0
	)
	x := sine(n, fs, f0, 10)
	for i := range x {
		x[i] += 1650
	}

	rec := Analyze(x, fs)
	assert.InDelta(t, f0, rec.ResonanceHz, 1e-9)
}

func TestAnalyzeNegativePeak(t *testing.T) {
	// The reported peak sample keeps its sign.
	x := []float64{0, -50, 10, 5}
	rec := Analyze(x, 100)
	assert.Equal(t, -50.0, rec.PeakMV)
	assert.InDelta(t, 0.01, rec.PeakTime, 1e-9)
	assert.InDelta(t, 60, rec.PeakToPeakMV, 1e-9)
}

func TestAnalyzeDegenerateSeries(t *testing.T) {
	for _, x := range [][]float64{nil, {5}} {
		rec := Analyze(x, 100)
		assert.Empty(t, rec.Freq)
		assert.Empty(t, rec.MagDB)
		assert.Zero(t, rec.TotalEnergy)
	}
}
