package lives

// Range identifies one life inside a concatenated fold as a half-open index
// interval.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of samples in the range.
func (r Range) Len() int { return r.End - r.Start }

// SplitIndices locates the lives concatenated in yTrue. A boundary sits on
// the last index before each positive RUL jump; a life spans one past its
// opening boundary up to its closing boundary exclusive, so boundary samples
// (including the fold's first) belong to no life. Empty ranges are dropped.
func SplitIndices(yTrue []float64) []Range {
	breaks := []int{0}
	for i := 0; i+1 < len(yTrue); i++ {
		if yTrue[i+1]-yTrue[i] > 0 {
			breaks = append(breaks, i)
		}
	}
	breaks = append(breaks, len(yTrue))
	var out []Range
	for i := 0; i+1 < len(breaks); i++ {
		r := Range{Start: breaks[i] + 1, End: breaks[i+1]}
		if r.Len() <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}
