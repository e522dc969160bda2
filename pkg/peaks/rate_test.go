package peaks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateRate(t *testing.T) {
	// 100 Hz axis: t[i] = i/100.
	timeAxis := make([]float64, 500)
	for i := range timeAxis {
		timeAxis[i] = float64(i) / 100
	}

	t.Run("one second apart is sixty", func(t *testing.T) {
		r := EstimateRate([]int{100, 200, 300, 400}, timeAxis)
		assert.True(t, r.Defined)
		assert.Equal(t, 4, r.PeakCount)
		assert.InDelta(t, 60, r.BPM, 1e-9)
	})

	t.Run("uneven intervals average per interval", func(t *testing.T) {
		// Gaps of 1 s and 2 s: mean of 60 and 30.
		r := EstimateRate([]int{0, 100, 300}, timeAxis)
		assert.True(t, r.Defined)
		assert.InDelta(t, 45, r.BPM, 1e-9)
	})

	t.Run("single peak is undefined", func(t *testing.T) {
		r := EstimateRate([]int{100}, timeAxis)
		assert.False(t, r.Defined)
		assert.Equal(t, 1, r.PeakCount)
		assert.Zero(t, r.BPM)
	})

	t.Run("no peaks is undefined", func(t *testing.T) {
		r := EstimateRate(nil, timeAxis)
		assert.False(t, r.Defined)
		assert.Zero(t, r.PeakCount)
	})

	t.Run("coincident peaks contribute nothing", func(t *testing.T) {
		r := EstimateRate([]int{100, 100}, timeAxis)
		assert.False(t, r.Defined)
	})
}

func TestRateString(t *testing.T) {
	assert.Equal(t, "undefined", Rate{}.String())
	assert.Equal(t, "17.5 BPM", Rate{BPM: 17.5, Defined: true}.String())
}
