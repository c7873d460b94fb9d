package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phm-tools/rulkit/core/model"
)

func testSet() model.ResultSet {
	return model.ResultSet{
		"gru": {
			{True: []float64{3, 2, 1}, Predicted: []float64{2, 2, 2}},
			{True: []float64{4, 2}, Predicted: []float64{2, 2}},
		},
	}
}

func TestCVMetrics(t *testing.T) {
	got, err := CV(testSet(), math.Inf(1), 0)
	if err != nil {
		t.Fatalf("cv: %v", err)
	}
	folds := got["gru"]
	if assert.Len(t, folds, 2) {
		// fold 0: |e| = [1,0,1], weights [1/3, 0, 1]
		assert.InDelta(t, 2.0/3.0, float64(folds[0].MAE), 1e-9)
		assert.InDelta(t, 2.0/3.0, float64(folds[0].MSE), 1e-9)
		assert.InDelta(t, 1.0, float64(folds[0].MAEWeighted), 1e-9)
		assert.InDelta(t, 1.0, float64(folds[0].MSEWeighted), 1e-9)

		// fold 1: |e| = [2,0], weights [0.5, 0]
		assert.InDelta(t, 1.0, float64(folds[1].MAE), 1e-9)
		assert.InDelta(t, 2.0, float64(folds[1].MSE), 1e-9)
		assert.InDelta(t, 2.0, float64(folds[1].MAEWeighted), 1e-9)
		assert.InDelta(t, 4.0, float64(folds[1].MSEWeighted), 1e-9)
	}
}

func TestCVThresholdFiltersSamples(t *testing.T) {
	got, err := CV(testSet(), 2, 0)
	if err != nil {
		t.Fatalf("cv: %v", err)
	}
	// fold 0 keeps true values [2,1] -> |e| = [0,1]
	assert.InDelta(t, 0.5, float64(got["gru"][0].MAE), 1e-9)
}

func TestCVThresholdCanEmptyAFold(t *testing.T) {
	got, err := CV(testSet(), 0.5, 0)
	if err != nil {
		t.Fatalf("cv: %v", err)
	}
	assert.True(t, math.IsNaN(float64(got["gru"][1].MAE)))
}

func TestCVLengthMismatch(t *testing.T) {
	rs := model.ResultSet{"m": {{True: []float64{1, 2}, Predicted: []float64{1}}}}
	if _, err := CV(rs, math.Inf(1), 0); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestHoldOut(t *testing.T) {
	got, err := HoldOut(testSet(), 1, 0)
	if err != nil {
		t.Fatalf("hold out: %v", err)
	}
	assert.InDelta(t, 1.0, float64(got["gru"].MAE), 1e-9)
	assert.InDelta(t, 2.0, float64(got["gru"].MSE), 1e-9)
}

func TestHoldOutMissingFold(t *testing.T) {
	if _, err := HoldOut(testSet(), 5, 0); err == nil {
		t.Fatalf("expected missing fold error")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]FoldMetrics{
		{MAE: 2.0 / 3.0},
		{MAE: 1.0},
	})
	assert.InDelta(t, 5.0/6.0, float64(s.MAE.Mean), 1e-9)
	assert.InDelta(t, math.Sqrt(1.0/18.0), float64(s.MAE.Std), 1e-9)
}

func TestSummarizeSingleFoldStdIsNaN(t *testing.T) {
	s := Summarize([]FoldMetrics{{MAE: 1}})
	assert.Equal(t, model.Float(1), s.MAE.Mean)
	assert.True(t, math.IsNaN(float64(s.MAE.Std)))
}

func TestMetricSummaryString(t *testing.T) {
	s := MetricSummary{Mean: 0.8333, Std: 0.2357}
	assert.Equal(t, "0.83 ± 0.24", s.String())
}

func TestSummarizeAll(t *testing.T) {
	byModel, err := CV(testSet(), math.Inf(1), 0)
	if err != nil {
		t.Fatalf("cv: %v", err)
	}
	all := SummarizeAll(byModel)
	assert.Contains(t, all, "gru")
	assert.InDelta(t, 5.0/6.0, float64(all["gru"].MAE.Mean), 1e-9)
}
