package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SavitzkyGolay smooths x by least-squares fitting a polynomial of the
// given order inside a sliding window of odd width w. Interior samples get
// the fitted value at the window center; the first and last half-windows
// are filled by evaluating the polynomials fitted to the first and last
// full windows, so the output has the same length as the input.
func SavitzkyGolay(x []float64, w, order int) ([]float64, error) {
	if w <= 0 || w%2 == 0 {
		return nil, fmt.Errorf("savgol window must be odd and positive, got %d", w)
	}
	if order < 0 || order >= w {
		return nil, fmt.Errorf("savgol order %d invalid for window %d", order, w)
	}
	if len(x) < w {
		return nil, fmt.Errorf("savgol window %d over %d samples: %w", w, len(x), ErrInsufficientData)
	}

	half := w / 2
	proj, err := savgolProjection(w, order)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))

	// Interior: fitted value at the window center is the polynomial's
	// constant term, i.e. row 0 of the projection dotted with the window.
	for i := half; i < len(x)-half; i++ {
		var v float64
		for j := 0; j < w; j++ {
			v += proj.At(0, j) * x[i-half+j]
		}
		out[i] = v
	}

	// Leading edge: evaluate the first window's polynomial at its own
	// offsets.
	coef := fitWindow(proj, x[:w], order)
	for i := 0; i < half; i++ {
		out[i] = evalPoly(coef, float64(i-half))
	}

	// Trailing edge: same with the last window.
	coef = fitWindow(proj, x[len(x)-w:], order)
	for i := len(x) - half; i < len(x); i++ {
		out[i] = evalPoly(coef, float64(i-(len(x)-1-half)))
	}

	return out, nil
}

// savgolProjection returns the (order+1) x w matrix P with P*y giving the
// least-squares polynomial coefficients for a window y at offsets
// -half..half: P = (AᵀA)⁻¹ Aᵀ for the Vandermonde matrix A.
func savgolProjection(w, order int) (*mat.Dense, error) {
	half := w / 2

	a := mat.NewDense(w, order+1, nil)
	for i := 0; i < w; i++ {
		t := float64(i - half)
		p := 1.0
		for k := 0; k <= order; k++ {
			a.Set(i, k, p)
			p *= t
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	var proj mat.Dense
	if err := proj.Solve(&ata, a.T()); err != nil {
		return nil, fmt.Errorf("savgol design matrix is singular for window %d order %d: %w", w, order, err)
	}
	return &proj, nil
}

func fitWindow(proj *mat.Dense, window []float64, order int) []float64 {
	coef := make([]float64, order+1)
	for k := 0; k <= order; k++ {
		var v float64
		for j, y := range window {
			v += proj.At(k, j) * y
		}
		coef[k] = v
	}
	return coef
}

func evalPoly(coef []float64, t float64) float64 {
	v := 0.0
	for k := len(coef) - 1; k >= 0; k-- {
		v = v*t + coef[k]
	}
	return v
}
