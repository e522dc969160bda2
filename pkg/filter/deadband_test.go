package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadBand(t *testing.T) {
	// Mean is 100; deviations of ±5 flatten, ±50 survive.
	x := []float64{100, 105, 95, 150, 50, 100}
	out := DeadBand(x, 10)

	require.Len(t, out, len(x))
	assert.Equal(t, []float64{100, 100, 100, 150, 50, 100}, out)
}

func TestDeadBandZeroThresholdKeepsDeviations(t *testing.T) {
	x := []float64{1, 2, 3}
	out := DeadBand(x, 0)
	// Only the sample exactly at the mean flattens (to itself).
	assert.Equal(t, x, out)
}

func TestDeadBandAllWithinBand(t *testing.T) {
	x := []float64{10, 10.5, 9.5, 10}
	out := DeadBand(x, 1)
	for _, v := range out {
		assert.InDelta(t, 10, v, 1e-9)
	}
}

func TestDeadBandEmpty(t *testing.T) {
	assert.Empty(t, DeadBand(nil, 5))
}
