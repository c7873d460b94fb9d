package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts rs/zerolog to the Logger interface.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a logger stamping every entry with the component
// field. Output is JSON on stdout; APP_ENV=dev switches to the console
// writer.
func NewZerologLogger(component string) Logger {
	zl := zerolog.New(output()).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{zl: zl}
}

func output() io.Writer {
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
