// Package lives turns concatenated RUL sequences into per-life degradation
// trajectories and computes per-life prognostic metrics: weighted errors
// against ground truth, end of life, and maintenance scheduling quality under
// a fault horizon.
package lives
