package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	t.Run("valid mode values", func(t *testing.T) {
		out, err := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 3, 4}, out)
	})

	t.Run("output length is len minus window plus one", func(t *testing.T) {
		x := make([]float64, 100)
		out, err := MovingAverage(x, 20)
		require.NoError(t, err)
		assert.Len(t, out, 81)
	})

	t.Run("window of one is identity", func(t *testing.T) {
		x := []float64{3.5, -1, 7}
		out, err := MovingAverage(x, 1)
		require.NoError(t, err)
		assert.Equal(t, x, out)
	})

	t.Run("constant series stays constant", func(t *testing.T) {
		x := []float64{7, 7, 7, 7, 7, 7}
		out, err := MovingAverage(x, 4)
		require.NoError(t, err)
		for _, v := range out {
			assert.InDelta(t, 7, v, 1e-12)
		}
	})

	t.Run("too few samples", func(t *testing.T) {
		_, err := MovingAverage([]float64{1, 2}, 3)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := MovingAverage([]float64{1, 2, 3}, 0)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInsufficientData)
	})
}
