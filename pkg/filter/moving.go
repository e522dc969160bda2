package filter

import "fmt"

// MovingAverage convolves x with a uniform kernel of width w in valid mode:
// no edge padding, output length len(x)-w+1.
func MovingAverage(x []float64, w int) ([]float64, error) {
	if w <= 0 {
		return nil, fmt.Errorf("invalid moving average window %d", w)
	}
	if len(x) < w {
		return nil, fmt.Errorf("moving average window %d over %d samples: %w", w, len(x), ErrInsufficientData)
	}

	out := make([]float64, len(x)-w+1)

	// Running sum; one add and one subtract per output sample.
	var sum float64
	for _, v := range x[:w] {
		sum += v
	}
	out[0] = sum / float64(w)
	for i := 1; i < len(out); i++ {
		sum += x[i+w-1] - x[i-1]
		out[i] = sum / float64(w)
	}

	return out, nil
}
