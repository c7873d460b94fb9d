package lives

import "math"

// RULLine builds the reference RUL trajectory of length n that starts at rul
// and declines by the given per-step deltas, clamped at zero. A nil steps
// slice means a decline of one unit per step. The walk stops once the
// trajectory hits zero; remaining entries stay zero.
func RULLine(rul float64, n int, steps []float64) []float64 {
	z := make([]float64, n)
	if n == 0 {
		return z
	}
	z[0] = rul
	if steps == nil {
		steps = make([]float64, n)
		for i := range steps {
			steps[i] = -1
		}
	}
	for i := 0; i+1 < len(steps) && i+1 < n; i++ {
		z[i+1] = math.Max(z[i]+steps[i], 0)
		if z[i+1] < 1e-13 {
			break
		}
	}
	return z
}
