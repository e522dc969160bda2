package filter

import (
	"fmt"
	"math"
)

// biquad is one second-order IIR section in transposed direct form II.
type biquad struct {
	a0, a1, a2, b1, b2 float64
	z1, z2             float64
}

func (s *biquad) process(in float64) float64 {
	out := in*s.a0 + s.z1
	s.z1 = in*s.a1 - out*s.b1 + s.z2
	s.z2 = in*s.a2 - out*s.b2
	return out
}

// prime sets the section's delay line to its steady state for a constant
// input x, so a pass starts without a step transient.
func (s *biquad) prime(x float64) {
	gain := (s.a0 + s.a1 + s.a2) / (1 + s.b1 + s.b2)
	y := gain * x
	s.z1 = y - s.a0*x
	s.z2 = s.a2*x - s.b2*y
}

// designLowPass computes the biquad cascade of an order-N Butterworth
// low-pass via bilinear transform of the analog prototype poles. The order
// must be even so the cascade is made of full second-order sections.
func designLowPass(order int, fs, cutoff float64) []biquad {
	// Clamp the cutoff below Nyquist: tan blows up at fs/2.
	if cutoff >= fs*0.499 {
		cutoff = fs * 0.499
	}

	// Pre-warped analog cutoff.
	w := 2.0 * fs * math.Tan(math.Pi*cutoff/fs)

	sections := make([]biquad, order/2)
	for i := range sections {
		theta := math.Pi * (2.0*float64(i) + 1.0) / (2.0 * float64(order))

		// Analog prototype pole pair, scaled to the warped cutoff.
		pRe := -w * math.Sin(theta)
		pIm := w * math.Cos(theta)

		// Bilinear transform of 1/((s-p)(s-p*)).
		alpha := 4.0*fs*fs - 4.0*fs*pRe + pRe*pRe + pIm*pIm

		sections[i] = biquad{
			a0: (w * w) / alpha,
			a1: (2.0 * w * w) / alpha,
			a2: (w * w) / alpha,
			b1: (-8.0*fs*fs + 2.0*(pRe*pRe+pIm*pIm)) / alpha,
			b2: (4.0*fs*fs + 4.0*fs*pRe + pRe*pRe + pIm*pIm) / alpha,
		}
	}
	return sections
}

// LowPass applies an order-N Butterworth low-pass with the given cutoff
// frequency (Hz, relative to sampling rate fs) forward and backward, so the
// result is zero-phase and the same length as the input. The order must be
// even and positive.
func LowPass(x []float64, fs, cutoff float64, order int) ([]float64, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("low-pass order must be even and positive, got %d", order)
	}
	if fs <= 0 || cutoff <= 0 {
		return nil, fmt.Errorf("invalid low-pass rates: fs=%g cutoff=%g", fs, cutoff)
	}

	pad := 3 * (order + 1)
	if len(x) <= pad {
		return nil, fmt.Errorf("low-pass needs more than %d samples, got %d: %w", pad, len(x), ErrInsufficientData)
	}

	// Odd extension at both ends suppresses edge transients of the
	// forward-backward pass.
	ext := make([]float64, 0, len(x)+2*pad)
	for i := pad; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := len(x) - 2; i >= len(x)-1-pad; i-- {
		ext = append(ext, 2*x[len(x)-1]-x[i])
	}

	runPass(ext, order, fs, cutoff)
	reverse(ext)
	runPass(ext, order, fs, cutoff)
	reverse(ext)

	out := make([]float64, len(x))
	copy(out, ext[pad:pad+len(x)])
	return out, nil
}

// runPass filters x in place through a freshly designed cascade, each
// section primed on the first sample.
func runPass(x []float64, order int, fs, cutoff float64) {
	sections := designLowPass(order, fs, cutoff)
	for i := range sections {
		sections[i].prime(x[0])
	}
	for i, v := range x {
		for j := range sections {
			v = sections[j].process(v)
		}
		x[i] = v
	}
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
