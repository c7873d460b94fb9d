package config

import (
	"fmt"

	"github.com/phm-tools/rulkit/core/fitting"
)

// FittingConfig selects the curve-fitting strategy applied to each life.
type FittingConfig struct {
	// Strategy is "piecewise" or "interpolate".
	Strategy string `json:"strategy"`
	// Tolerance is the residual above which the piecewise fitter inserts a
	// breakpoint.
	Tolerance float64 `json:"tolerance"`
}

// SetDefaults applies sane defaults.
func (c *FittingConfig) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = "piecewise"
	}
	if c.Tolerance == 0 {
		c.Tolerance = fitting.DefaultTolerance
	}
}

// Validate checks mandatory fields.
func (c FittingConfig) Validate() error {
	if c.Strategy != "piecewise" && c.Strategy != "interpolate" {
		return fmt.Errorf("unknown fitting strategy %s", c.Strategy)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be > 0, got %v", c.Tolerance)
	}
	return nil
}

// Factory returns the configured fitter factory.
func (c FittingConfig) Factory() fitting.Factory {
	if c.Strategy == "interpolate" {
		return fitting.InterpolatorFactory{}
	}
	return fitting.PiecewiseFactory{Tolerance: c.Tolerance}
}
