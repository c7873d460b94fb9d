package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/phm-tools/rulkit/core/model"
)

// Load reads a result set from a JSON file mapping model names to their
// per-fold true and predicted RUL sequences. Missing predictions are encoded
// as JSON null and decode to NaN.
func Load(path string) (model.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes a result set from raw JSON and validates it.
func Parse(data []byte) (model.ResultSet, error) {
	var rs model.ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if err := Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Validate checks the structural integrity of a result set: at least one
// model, no empty folds, and index-aligned sequences in every fold.
func Validate(rs model.ResultSet) error {
	if len(rs) == 0 {
		return errors.New("no models in result set")
	}
	for _, name := range rs.Models() {
		folds := rs[name]
		if len(folds) == 0 {
			return fmt.Errorf("model %s has no folds", name)
		}
		for i, f := range folds {
			if len(f.True) != len(f.Predicted) {
				return fmt.Errorf("model %s fold %d: length mismatch: %d true vs %d predicted", name, i, len(f.True), len(f.Predicted))
			}
			if len(f.True) == 0 {
				return fmt.Errorf("model %s fold %d is empty", name, i)
			}
		}
	}
	return nil
}
