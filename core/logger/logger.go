package logger

// Logger is the logging contract of the core packages. Adapters live in
// infra/logger; the NopLogger there serves tests and optional collaborators.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw attaches structured fields to a debug message.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
