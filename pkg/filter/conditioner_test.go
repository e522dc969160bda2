package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira/pkg/config"
)

func TestFromConfig(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		x[i] = float64(i % 7)
	}

	tests := []struct {
		name    string
		cfg     config.FilterConfig
		wantLen int
	}{
		{
			name:    "moving average trims the series",
			cfg:     config.FilterConfig{Strategy: "moving_average", Window: 20},
			wantLen: 181,
		},
		{
			name:    "lowpass preserves length",
			cfg:     config.FilterConfig{Strategy: "lowpass", Order: 4, CutoffHz: 0.6},
			wantLen: 200,
		},
		{
			name:    "savgol preserves length",
			cfg:     config.FilterConfig{Strategy: "savgol", SGWindow: 11, SGOrder: 3},
			wantLen: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := FromConfig(tt.cfg, 100)
			require.NoError(t, err)

			out, err := cond(x)
			require.NoError(t, err)
			assert.Len(t, out, tt.wantLen)
		})
	}
}

func TestFromConfigUnknownStrategy(t *testing.T) {
	_, err := FromConfig(config.FilterConfig{Strategy: "median"}, 100)
	assert.Error(t, err)
}
