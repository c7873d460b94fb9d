package lives

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTwoLives(t *testing.T) {
	yTrue := []float64{3, 2, 1, 5, 4, 3, 2, 1}
	yPred := []float64{3, 2, 1, 5, 4, 3, 2, 1}
	rep, err := Split(yTrue, yPred, Options{})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if assert.Len(t, rep.Lives, 2) {
		assert.Equal(t, []float64{2}, rep.Lives[0].YTrue)
		assert.Equal(t, []float64{5, 4, 3, 2, 1}, rep.Lives[1].YTrue)
	}
	assert.Equal(t, []Range{{Start: 1, End: 2}, {Start: 3, End: 8}}, rep.Ranges)
	assert.Empty(t, rep.Skipped)
}

func TestSplitSkipsNaNPredictions(t *testing.T) {
	yTrue := []float64{3, 2, 1, 5, 4, 3, 2, 1}
	yPred := []float64{3, math.NaN(), 1, 5, 4, 3, 2, 1}
	rep, err := Split(yTrue, yPred, Options{})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if assert.Len(t, rep.Lives, 1) {
		assert.Equal(t, []float64{5, 4, 3, 2, 1}, rep.Lives[0].YTrue)
	}
	if assert.Len(t, rep.Skipped, 1) {
		assert.Equal(t, SkipNaN, rep.Skipped[0].Reason)
		assert.Equal(t, Range{Start: 1, End: 2}, rep.Skipped[0].Range)
	}
}

func TestSplitNaNInTrueValuesStillSplits(t *testing.T) {
	// NaN in the true values is not screened; only predictions are.
	yTrue := []float64{3, 2, 1, 5, 4, 3, 2, 1}
	yPred := []float64{3, 2, 1, 5, 4, 3, 2, 1}
	yTrue[4] = math.NaN()
	rep, err := Split(yTrue, yPred, Options{})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	assert.Len(t, rep.Lives, 2)
}

func TestSplitLengthMismatch(t *testing.T) {
	if _, err := Split([]float64{1, 2}, []float64{1}, Options{}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestSplitEmptyInput(t *testing.T) {
	rep, err := Split(nil, nil, Options{})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	assert.Empty(t, rep.Lives)
	assert.Empty(t, rep.Skipped)
}
