package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelError, "ERROR"},
		{slog.LevelWarn, "WARN "},
		{slog.LevelInfo, "INFO "},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelError + 4, "ERROR"},
	}

	for _, tt := range tests {
		if got := levelTag(tt.level); got != tt.expected {
			t.Errorf("levelTag(%v) = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "debug", Format: "console", Output: &buf})

	lg.With("component", "render").WithGroup("shader").Info("reloaded", "path", "lighting.frag")

	line := buf.String()
	for _, want := range []string{"INFO ", "reloaded", "  component=render", "  shader.path=lighting.frag"} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q does not contain %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("output %q does not end with a newline", line)
	}
}

func TestConsoleHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "warn", Output: &buf})

	lg.Info("hidden")
	lg.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("output = %q, want nothing below warn", buf.String())
	}

	lg.Warn("shown")
	if !strings.Contains(buf.String(), "WARN  shown") {
		t.Errorf("output = %q, want the warning", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "info", Format: "json", Output: &buf})
	lg.Info("frame", "fps", 60)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if rec["msg"] != "frame" || rec["fps"] != float64(60) {
		t.Errorf("record = %v, want msg=frame fps=60", rec)
	}
}
