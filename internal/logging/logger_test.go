package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "parser", "debug", "json")
	log.WithField("channels", 3).Debug("parsed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "parser" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["msg"] != "parsed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["channels"] != float64(3) {
		t.Errorf("channels = %v", entry["channels"])
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "query", "warn", "text")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewWithWriter_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "query", "loud", "text")
	log.Debug("debug line")
	log.Info("info line")

	out := buf.String()
	if strings.Contains(out, "debug line") || !strings.Contains(out, "info line") {
		t.Errorf("unexpected output for default level: %q", out)
	}
}
