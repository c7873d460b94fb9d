// Package eval runs complete evaluations of RUL prediction results. The
// Evaluator splits each fold into run-to-failure lives, bins errors by true
// RUL, sweeps the maintenance horizon metrics and computes regression
// summaries, collecting everything into a Report that the export and store
// layers consume.
package eval
