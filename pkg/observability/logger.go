// Package observability provides structured logging for contextfit.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a log field.
type Field struct {
	Key   string
	Value any
}

// slogLogger backs the Logger interface with log/slog.
type slogLogger struct {
	l *slog.Logger
}

// NewLogger creates a logger writing text output to stderr at the given level.
// Unrecognized levels fall back to info.
func NewLogger(level string) Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo creates a logger writing to an arbitrary destination.
func NewLoggerTo(w io.Writer, level string) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &slogLogger{l: slog.New(h)}
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() Logger {
	return NewLoggerTo(io.Discard, "error")
}

// ParseLevel maps a config log level string to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.l.Debug(msg, args(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...Field) {
	l.l.Info(msg, args(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.l.Warn(msg, args(fields)...)
}

func (l *slogLogger) Error(msg string, fields ...Field) {
	l.l.Error(msg, args(fields)...)
}

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: l.l.With(args(fields)...)}
}

func args(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
