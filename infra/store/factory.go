package store

import (
	"github.com/phm-tools/rulkit/core/factory"
	"github.com/phm-tools/rulkit/core/report"
)

// init registers built-in run-summary stores.
func init() {
	_ = report.RegisterStore("memory", func(map[string]any) (report.Store, error) {
		return report.NewMemoryStore(), nil
	})

	_ = report.RegisterStore("sqlite", func(conf map[string]any) (report.Store, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			c.Path = "runs.db"
		}
		return NewSQLiteStore(c.Path)
	})
}
