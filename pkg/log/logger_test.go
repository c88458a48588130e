package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureOutput redirects all loggers into a buffer for the duration of the test
func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	SetSink(&buf)
	t.Cleanup(func() {
		SetLevel(Notice)
		SetSink(os.Stdout)
	})
	return &buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden message")
	logger.Notice("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("Expected info message to be filtered at notice level, got %q", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("Expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value=%d", 42)
	if !strings.Contains(buf.String(), "value=42") {
		t.Errorf("Expected debug message at debug level, got %q", buf.String())
	}
}

func TestSetSink_KeepsLevel(t *testing.T) {
	SetLevel(Debug)
	buf := captureOutput(t)

	New("sink").Debug("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Errorf("Expected debug level to survive a sink change, got %q", buf.String())
	}
}

func TestSetModuleLevel(t *testing.T) {
	buf := captureOutput(t)
	SetLevel(Info)
	SetModuleLevel("quiet", Error)
	defer SetModuleLevel("quiet", Notice)

	New("quiet").Warning("quiet warning")
	New("loud").Info("loud info")

	out := buf.String()
	if strings.Contains(out, "quiet warning") {
		t.Errorf("Expected warning to be filtered for module at error level, got %q", out)
	}
	if !strings.Contains(out, "loud info") {
		t.Errorf("Expected other modules to keep the default level, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input       string
		expected    Level
		expectError bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{" notice ", Notice, false},
		{"warn", Warning, false},
		{"warning", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.expectError {
				t.Fatalf("Expected error=%t, got %v", tt.expectError, err)
			}
			if level != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, level)
			}
			if !tt.expectError && level.String() != strings.ToLower(strings.TrimSpace(tt.input)) && tt.input != "warn" {
				t.Errorf("Expected String() to round trip %q, got %q", tt.input, level.String())
			}
		})
	}
}
