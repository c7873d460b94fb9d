// Package cv aggregates model prediction errors across cross-validation
// folds, stratified into true-RUL magnitude bins so error behaviour near the
// end of life is visible separately from early-life behaviour.
package cv
