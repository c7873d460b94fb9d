// Package regression computes fold-level regression metrics over RUL
// predictions: MAE and MSE in plain and relative-weighted form, with mean
// and spread summaries across cross-validation folds.
package regression
