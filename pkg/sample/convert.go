package sample

import "respira/pkg/config"

// Voltage converts ADC codes to millivolts using the linear calibration
// mv = code * fullScale / maxCode.
func Voltage(codes []uint16, cal config.CalibrationConfig) []float64 {
	mv := make([]float64, len(codes))
	for i, c := range codes {
		mv[i] = float64(c) * cal.FullScaleMV / float64(cal.MaxCode)
	}
	return mv
}

// Mirror reflects a voltage series around the calibration center,
// correcting a sensor wired with inverted polarity: v' = 2*center - v.
func Mirror(mv []float64, cal config.CalibrationConfig) []float64 {
	out := make([]float64, len(mv))
	for i, v := range mv {
		out[i] = 2*cal.CenterMV - v
	}
	return out
}

// TimeAxis returns n sample times spanning [0, n/fs] inclusive, one per
// sample. For n < 2 the axis is all zeros.
func TimeAxis(n int, fs float64) []float64 {
	t := make([]float64, n)
	if n < 2 {
		return t
	}
	step := (float64(n) / fs) / float64(n-1)
	for i := range t {
		t[i] = float64(i) * step
	}
	return t
}
