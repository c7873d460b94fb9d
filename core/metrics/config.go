package metrics

import "github.com/phm-tools/rulkit/core/factory"

// Config lists the sinks an evaluation run reports to. Each entry selects a
// registered sink type together with its raw settings.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
