// Package fitting provides the curve-fitting capability used to turn a
// degradation trajectory into an evaluable function of time. The fitting
// algorithm is behind the Fitter interface so alternative strategies can be
// swapped in without touching the evaluation code.
package fitting
