package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("extracted entries", Int("count", 3), String(FieldContainer, "level0"))

	line := buf.String()
	for _, want := range []string{"INFO", "extracted entries", "count=3", "container=level0"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("color codes written to non-terminal output: %q", line)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Warn("collision detected", String("key", "abc"))
	line := buf.String()
	if !strings.Contains(line, `"msg":"collision detected"`) || !strings.Contains(line, `"key":"abc"`) {
		t.Fatalf("unexpected json line: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Fatalf("level filtering broken: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic and must stay silent.
	NewNop().Error("ignored", Error(nil))
}
