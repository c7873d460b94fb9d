// Package horizon evaluates maintenance scheduling quality over a range of
// fault horizons: how much lifetime a policy gives up by maintaining early
// and how often units break before maintenance, aggregated across
// cross-validation folds.
package horizon
