package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A cubic fitted by a cubic is reproduced exactly, edges included.
func TestSavitzkyGolayReproducesCubic(t *testing.T) {
	x := make([]float64, 60)
	for i := range x {
		v := float64(i)
		x[i] = 0.02*v*v*v - 0.5*v*v + 3*v - 7
	}

	out, err := SavitzkyGolay(x, 11, 3)
	require.NoError(t, err)
	require.Len(t, out, len(x))
	for i := range x {
		assert.InDelta(t, x[i], out[i], 1e-6, "sample %d", i)
	}
}

func TestSavitzkyGolayPreservesConstant(t *testing.T) {
	x := make([]float64, 40)
	for i := range x {
		x[i] = 42
	}
	out, err := SavitzkyGolay(x, 9, 2)
	require.NoError(t, err)
	for i, v := range out {
		assert.InDelta(t, 42, v, 1e-9, "sample %d", i)
	}
}

func TestSavitzkyGolaySmooths(t *testing.T) {
	// Noisy slow sinusoid: smoothing must reduce the deviation from the
	// clean signal.
	clean := make([]float64, 400)
	noisy := make([]float64, 400)
	for i := range clean {
		clean[i] = 100 * math.Sin(2*math.Pi*float64(i)/400)
		noisy[i] = clean[i] + 5*math.Sin(float64(i)*2.7)
	}

	out, err := SavitzkyGolay(noisy, 31, 3)
	require.NoError(t, err)

	var before, after float64
	for i := range clean {
		before += math.Abs(noisy[i] - clean[i])
		after += math.Abs(out[i] - clean[i])
	}
	assert.Less(t, after, before/2)
}

func TestSavitzkyGolayArguments(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		w       int
		order   int
		wantErr error
	}{
		{name: "even window", n: 50, w: 10, order: 3},
		{name: "negative order", n: 50, w: 11, order: -1},
		{name: "order not below window", n: 50, w: 5, order: 5},
		{name: "series shorter than window", n: 10, w: 11, order: 3, wantErr: ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SavitzkyGolay(make([]float64, tt.n), tt.w, tt.order)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrInsufficientData)
			}
		})
	}
}
