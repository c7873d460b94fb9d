package lives

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIndicesTwoLives(t *testing.T) {
	got := SplitIndices([]float64{3, 2, 1, 5, 4, 3, 2, 1})
	assert.Equal(t, []Range{{Start: 1, End: 2}, {Start: 3, End: 8}}, got)
}

func TestSplitIndicesThreeLives(t *testing.T) {
	got := SplitIndices([]float64{3, 2, 1, 5, 4, 3, 1, 9, 8})
	assert.Equal(t, []Range{{Start: 1, End: 2}, {Start: 3, End: 6}, {Start: 7, End: 9}}, got)
}

func TestSplitIndicesSingleLifeSkipsLeadingSample(t *testing.T) {
	got := SplitIndices([]float64{5, 4, 3, 2, 1})
	assert.Equal(t, []Range{{Start: 1, End: 5}}, got)
}

func TestSplitIndicesDropsEmptyRanges(t *testing.T) {
	// Strictly increasing input: every step is a boundary, so almost every
	// range collapses to nothing.
	got := SplitIndices([]float64{1, 2, 3})
	assert.Equal(t, []Range{{Start: 2, End: 3}}, got)
}

func TestSplitIndicesDegenerateInputs(t *testing.T) {
	assert.Empty(t, SplitIndices(nil))
	assert.Empty(t, SplitIndices([]float64{7}))
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 4, Range{Start: 3, End: 7}.Len())
	assert.Equal(t, 0, Range{Start: 3, End: 3}.Len())
}
