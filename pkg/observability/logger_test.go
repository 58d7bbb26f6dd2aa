// Package observability tests
package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "warn")

	log.Info("should not appear")
	log.Warn("should appear", String("component", "chunker"))

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing")
	}
	if !strings.Contains(out, "component=chunker") {
		t.Error("field missing from output")
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "info").With(String("run", "abc123"))

	log.Info("fitted")

	if !strings.Contains(buf.String(), "run=abc123") {
		t.Errorf("With field missing: %s", buf.String())
	}
}
