package model

import "math"

// Weighting selects the per-sample weighting scheme for error metrics.
type Weighting string

const (
	// WeightUniform weighs every sample equally.
	WeightUniform Weighting = ""
	// WeightRelative weighs each sample by its absolute error relative to
	// the true RUL, so mistakes near the end of life cost more.
	WeightRelative Weighting = "relative"
)

// DefaultWeightClamp is the lower bound applied to true values when computing
// relative weights. It keeps samples with a near-zero remaining life from
// dominating the weight.
const DefaultWeightClamp = 0.9

// SampleWeights returns the per-sample weights for the scheme. The clamp c
// bounds true values from below in the relative scheme; c <= 0 selects
// DefaultWeightClamp.
func SampleWeights(w Weighting, c float64, yTrue, yPred []float64) []float64 {
	if c <= 0 {
		c = DefaultWeightClamp
	}
	out := make([]float64, len(yTrue))
	for i := range yTrue {
		if w == WeightRelative {
			out[i] = math.Abs(yTrue[i]-yPred[i]) / math.Max(yTrue[i], c)
		} else {
			out[i] = 1
		}
	}
	return out
}
