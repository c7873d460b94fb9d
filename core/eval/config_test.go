package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, 5, c.NBins)
	assert.Equal(t, 30.0, c.WindowSize)
	assert.Equal(t, 30, c.Steps)
	assert.Equal(t, 1.0, c.Q1)
	assert.Equal(t, 1.0, c.Q2)
	assert.Equal(t, 1e-10, c.Epsilon)
	assert.Equal(t, 0.9, c.WeightClamp)
	assert.True(t, math.IsInf(c.ErrorThreshold, 1))
	assert.Nil(t, c.RULThreshold)
	assert.NoError(t, c.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nbins", func(c *Config) { c.NBins = -1 }},
		{"window", func(c *Config) { c.WindowSize = -3 }},
		{"steps", func(c *Config) { c.Steps = 1 }},
		{"epsilon", func(c *Config) { c.Epsilon = -1e-10 }},
		{"clamp", func(c *Config) { c.WeightClamp = -0.5 }},
		{"error threshold", func(c *Config) { c.ErrorThreshold = -1 }},
		{"hold out", func(c *Config) { f := -2; c.HoldOutFold = &f }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Config
			c.SetDefaults()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
