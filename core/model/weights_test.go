package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleWeightsUniform(t *testing.T) {
	w := SampleWeights(WeightUniform, 0, []float64{3, 2}, []float64{1, 1})
	assert.Equal(t, []float64{1, 1}, w)
}

func TestSampleWeightsRelative(t *testing.T) {
	w := SampleWeights(WeightRelative, 0, []float64{3, 0.5}, []float64{2, 1.5})
	// |e| / max(true, 0.9)
	assert.InDelta(t, 1.0/3.0, w[0], 1e-9)
	assert.InDelta(t, 1.0/0.9, w[1], 1e-9)
}

func TestSampleWeightsCustomClamp(t *testing.T) {
	w := SampleWeights(WeightRelative, 2, []float64{1}, []float64{0})
	assert.InDelta(t, 0.5, w[0], 1e-9)
}
