// Package filter provides the interchangeable smoothing strategies applied
// to calibrated voltage series before peak detection or spectral analysis.
// Every strategy is a pure function: series in, series out, no state kept
// between invocations.
package filter

import (
	"errors"
	"fmt"

	"respira/pkg/config"
)

// ErrInsufficientData indicates a strategy needs more samples than the
// series provides. The caller suppresses the cycle's metrics; it is not a
// crash.
var ErrInsufficientData = errors.New("not enough samples for filter")

// Conditioner smooths a voltage series. Depending on the strategy the
// output may be shorter than the input (moving average) or equal length
// (low-pass, Savitzky-Golay).
type Conditioner func(x []float64) ([]float64, error)

// FromConfig builds the conditioner selected by cfg. fs is the sampling
// rate of the series the conditioner will be applied to.
func FromConfig(cfg config.FilterConfig, fs float64) (Conditioner, error) {
	switch cfg.Strategy {
	case "moving_average":
		w := cfg.Window
		return func(x []float64) ([]float64, error) {
			return MovingAverage(x, w)
		}, nil
	case "lowpass":
		order, cutoff := cfg.Order, cfg.CutoffHz
		return func(x []float64) ([]float64, error) {
			return LowPass(x, fs, cutoff, order)
		}, nil
	case "savgol":
		w, p := cfg.SGWindow, cfg.SGOrder
		return func(x []float64) ([]float64, error) {
			return SavitzkyGolay(x, w, p)
		}, nil
	default:
		return nil, fmt.Errorf("unknown filter strategy %q", cfg.Strategy)
	}
}
