package eval

import (
	"fmt"
	"math"
)

// Config holds the tunables of an evaluation run. Zero values select the
// documented defaults.
type Config struct {
	// NBins is the number of true-RUL bins errors are stratified into.
	NBins int `json:"nbins"`
	// WindowSize is the largest fault horizon swept by the maintenance
	// metrics.
	WindowSize float64 `json:"window_size"`
	// Steps is the number of horizons swept between 0 and WindowSize.
	Steps int `json:"steps"`
	// Q1 and Q2 weight the break and unexploited-lifetime terms of metric J.
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	// Epsilon guards the metric J fold normalization against division by zero.
	Epsilon float64 `json:"epsilon"`
	// WeightClamp bounds true RUL from below in relative sample weights.
	WeightClamp float64 `json:"weight_clamp"`
	// RULThreshold marks the RUL below which degradation is observable. Nil
	// treats the whole life as observable.
	RULThreshold *float64 `json:"rul_threshold"`
	// FitNotIncreasing constrains fitted curves to never rise with time.
	FitNotIncreasing bool `json:"fit_not_increasing"`
	// ErrorThreshold restricts the regression metrics to samples whose true
	// RUL is at or below it. Zero means no restriction.
	ErrorThreshold float64 `json:"error_threshold"`
	// HoldOutFold, when set, adds the metrics of that single fold across
	// models to the report.
	HoldOutFold *int `json:"hold_out_fold"`
	// SkipCurves drops the sampled fitted curves from the report, keeping it
	// small for large result sets.
	SkipCurves bool `json:"skip_curves"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.NBins == 0 {
		c.NBins = 5
	}
	if c.WindowSize == 0 {
		c.WindowSize = 30
	}
	if c.Steps == 0 {
		c.Steps = 30
	}
	if c.Q1 == 0 {
		c.Q1 = 1
	}
	if c.Q2 == 0 {
		c.Q2 = 1
	}
	if c.Epsilon == 0 {
		c.Epsilon = 1e-10
	}
	if c.WeightClamp == 0 {
		c.WeightClamp = 0.9
	}
	if c.ErrorThreshold == 0 {
		c.ErrorThreshold = math.Inf(1)
	}
}

// Validate checks ranges after defaults were applied.
func (c Config) Validate() error {
	if c.NBins < 1 {
		return fmt.Errorf("nbins must be >= 1, got %d", c.NBins)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("window_size must be > 0, got %g", c.WindowSize)
	}
	if c.Steps < 2 {
		return fmt.Errorf("steps must be >= 2, got %d", c.Steps)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be > 0, got %g", c.Epsilon)
	}
	if c.WeightClamp <= 0 {
		return fmt.Errorf("weight_clamp must be > 0, got %g", c.WeightClamp)
	}
	if c.ErrorThreshold <= 0 {
		return fmt.Errorf("error_threshold must be > 0, got %g", c.ErrorThreshold)
	}
	if c.HoldOutFold != nil && *c.HoldOutFold < 0 {
		return fmt.Errorf("hold_out_fold must be >= 0, got %d", *c.HoldOutFold)
	}
	return nil
}
