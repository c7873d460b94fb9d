package logger

import corelogger "github.com/phm-tools/rulkit/core/logger"

// Logger re-exports the core interface so infra callers need one import.
type Logger = corelogger.Logger

// New returns the zerolog-backed Logger for the given component.
func New(component string) Logger {
	return NewZerologLogger(component)
}
