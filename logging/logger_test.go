package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{" error ", ERROR},
		{"fatal", FATAL},
		{"verbose", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_LevelFilteringAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Output: &buf, Prefix: "trends"})

	logger.Infof("hidden %d", 1)
	logger.WithPrefix("cfbd").Warnf("upstream returned %d", 503)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO line written at WARN level: %q", out)
	}
	if !strings.Contains(out, "[trends:cfbd] upstream returned 503") {
		t.Errorf("missing nested prefix in %q", out)
	}
	if !strings.HasPrefix(out, "WARN ") {
		t.Errorf("line should start with level, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("color codes written with color disabled: %q", out)
	}
}

func TestLogger_ColorOnlyOnConsole(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	logger := New(Config{Level: "debug", Output: &buf, Prefix: "api", EnableColor: true, LogDir: dir})
	logger.Error("cache unavailable")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(buf.String(), levelColors[ERROR]) {
		t.Errorf("console output should be colored: %q", buf.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "api.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "[api] cache unavailable") || strings.Contains(string(data), "\033[") {
		t.Errorf("unexpected log file contents %q", data)
	}
}
