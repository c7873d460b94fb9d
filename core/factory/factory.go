package factory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ModuleConfig selects a pluggable implementation by type name and carries
// its raw settings.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory builds an implementation of T from raw settings.
type Factory[T any] func(conf map[string]any) (T, error)

// Registry maps type names to factories. Implementations register themselves
// from init functions; lookups happen at wiring time.
type Registry[T any] struct {
	mu     sync.RWMutex
	byName map[string]Factory[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]Factory[T])}
}

// Register adds a factory under the given type name. Empty names, nil
// factories, and duplicate registrations are rejected.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if name == "" {
		return fmt.Errorf("empty module type name")
	}
	if f == nil {
		return fmt.Errorf("nil factory for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("module type %q already registered", name)
	}
	r.byName[name] = f
	return nil
}

// Names returns the registered type names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Create builds the implementation selected by cfg.Type.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	var zero T
	if cfg.Type == "" {
		return zero, fmt.Errorf("module type missing")
	}
	r.mu.RLock()
	f, ok := r.byName[cfg.Type]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("unknown module type %q (registered: %s)", cfg.Type, strings.Join(r.Names(), ", "))
	}
	return f(cfg.Conf)
}

// Decode fills out from the settings map using the json tags of its fields.
// Typing is weak on purpose; JSON-parsed settings carry numbers as float64.
func Decode(conf map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(conf)
}
