// Package infra contains technical adapters such as metric sinks, the
// results loader and the report stores. These packages should depend only
// on the interfaces defined in the core packages.
package infra
