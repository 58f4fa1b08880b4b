package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger provides structured, leveled logging throughout the application.
// It is a thin printf-style façade over zerolog.
type Logger struct {
	z zerolog.Logger
}

// NewLogger creates a new Logger writing human-readable output to stderr.
func NewLogger() *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	return &Logger{z: zerolog.New(w).With().Timestamp().Logger()}
}

// NewSilentLogger creates a Logger that discards everything. Used in tests.
func NewSilentLogger() *Logger {
	return &Logger{z: zerolog.Nop()}
}

func (l *Logger) Info(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}
