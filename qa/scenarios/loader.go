package scenarios

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phm-tools/rulkit/core/eval"
	"github.com/phm-tools/rulkit/core/lives"
	"github.com/phm-tools/rulkit/core/model"
)

// LifeDef declares one synthetic run-to-failure life within a fold.
type LifeDef struct {
	Length int `yaml:"length"`
	// StartRUL defaults to length-1, declining by one per sample to zero.
	StartRUL float64 `yaml:"start_rul,omitempty"`
	// Bias is added to every predicted value.
	Bias float64 `yaml:"bias,omitempty"`
	// NaNAt lists sample indices whose prediction becomes NaN.
	NaNAt []int `yaml:"nan_at,omitempty"`
}

func (l LifeDef) Build() (yTrue, yPred []float64) {
	start := l.StartRUL
	if start == 0 {
		start = float64(l.Length - 1)
	}
	yTrue = lives.RULLine(start, l.Length, nil)
	yPred = make([]float64, len(yTrue))
	for i, v := range yTrue {
		yPred[i] = v + l.Bias
	}
	for _, idx := range l.NaNAt {
		if idx >= 0 && idx < len(yPred) {
			yPred[idx] = math.NaN()
		}
	}
	return yTrue, yPred
}

type FoldDef struct {
	Lives []LifeDef `yaml:"lives"`
}

func (f FoldDef) Build() model.FoldResult {
	var fr model.FoldResult
	for _, l := range f.Lives {
		yt, yp := l.Build()
		fr.True = append(fr.True, yt...)
		fr.Predicted = append(fr.Predicted, yp...)
	}
	return fr
}

type ModelDef struct {
	Name  string    `yaml:"name"`
	Folds []FoldDef `yaml:"folds"`
}

// ConfigDef overrides evaluation settings; zero fields keep the defaults.
type ConfigDef struct {
	NBins      int     `yaml:"nbins,omitempty"`
	WindowSize float64 `yaml:"window_size,omitempty"`
	Steps      int     `yaml:"steps,omitempty"`
}

func (c ConfigDef) Eval() eval.Config {
	return eval.Config{NBins: c.NBins, WindowSize: c.WindowSize, Steps: c.Steps}
}

// ExpectedModel holds the outcome bounds checked for one model.
type ExpectedModel struct {
	Lives   int      `yaml:"lives"`
	Skipped int      `yaml:"skipped,omitempty"`
	MaxMAE  *float64 `yaml:"max_mae,omitempty"`
	MinMAE  *float64 `yaml:"min_mae,omitempty"`
}

type Expected struct {
	Models map[string]ExpectedModel `yaml:"models"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Models      []ModelDef `yaml:"models"`
	Config      ConfigDef  `yaml:"config,omitempty"`
	Expected    Expected   `yaml:"expected"`
}

// ResultSet synthesizes the scenario's prediction data.
func (s *Scenario) ResultSet() model.ResultSet {
	rs := model.ResultSet{}
	for _, m := range s.Models {
		folds := make([]model.FoldResult, len(m.Folds))
		for i, f := range m.Folds {
			folds[i] = f.Build()
		}
		rs[m.Name] = folds
	}
	return rs
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
