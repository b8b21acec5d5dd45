package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	log := NewWithFormat("info", "json")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	// Test with formatting
	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"warn doesn't log at error level", "error", "warn", false},
		{"error always logs", "debug", "error", true},
		{"invalid config defaults to info", "verbose", "debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.configLevel, "json", &buf)

			ctx := context.Background()
			switch tt.logLevel {
			case "debug":
				log.Debug(ctx, "entry")
			case "info":
				log.Info(ctx, "entry")
			case "warn":
				log.Warn(ctx, "entry")
			case "error":
				log.Error(ctx, "entry")
			}

			if got := buf.Len() > 0; got != tt.shouldLog {
				t.Errorf("logged = %v, want %v (%s)", got, tt.shouldLog, buf.String())
			}
		})
	}
}

func TestWithAttachesField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := fromZap(zap.New(core)).With("run_id", "abc")

	log.Info(context.Background(), "scan finished: %d events", 4)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Message != "scan finished: 4 events" {
		t.Errorf("message = %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["run_id"]; got != "abc" {
		t.Errorf("run_id = %v, want abc", got)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "json", &buf)

	log.Debug(context.Background(), "hidden")
	log.Warn(context.Background(), "retrying in %ds", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"retrying in 2s"`) {
		t.Errorf("missing json message: %s", out)
	}
}
