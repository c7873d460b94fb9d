package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/phm-tools/rulkit/core/eval"
	"github.com/phm-tools/rulkit/core/metrics"
)

type Config struct {
	Evaluation eval.Config    `json:"evaluation"`
	Fitting    FittingConfig  `json:"fitting"`
	Metrics    metrics.Config `json:"metrics"`
	Store      StoreConfig    `json:"store"`
}

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("RK_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rk_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Evaluation.SetDefaults()
	c.Fitting.SetDefaults()
	c.Store.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Evaluation.Validate(); err != nil {
		return err
	}
	if err := c.Fitting.Validate(); err != nil {
		return err
	}
	return c.Store.Validate()
}
