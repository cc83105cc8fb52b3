package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coral-terminal.log")

	logger, closeFn, err := New(Config{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("fetching corals", zap.Int("dive_site_id", 5))
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"dive_site_id":5`) {
		t.Errorf("log output missing field, got %s", data)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coral-terminal.log")

	logger, closeFn, err := New(Config{Level: "warn", Format: "console", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden message")
	logger.Warn("visible message")
	closeFn()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(string(data), "visible message") {
		t.Error("warn message should be written")
	}
}

func TestNew_NoFileIsNop(t *testing.T) {
	logger, closeFn, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Error("goes nowhere")
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
