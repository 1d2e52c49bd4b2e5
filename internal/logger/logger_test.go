package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("season extracted", Fields{"season": 1950, "tiers": 4})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["message"] != "season extracted" {
		t.Errorf("message = %v", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("fields missing")
	}
	if fields["season"] != float64(1950) {
		t.Errorf("season field = %v", fields["season"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("dropped", nil)
	l.Info("dropped too", nil)
	if buf.Len() != 0 {
		t.Errorf("messages below minimum level should be discarded, got %q", buf.String())
	}

	l.Warn("kept", nil)
	if buf.Len() == 0 {
		t.Error("warn should be logged at warn level")
	}
}

func TestLoggerErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError, &buf)

	l.Error("fetch failed", Fields{"url": "https://example.org"}, errors.New("status 503"))

	if !strings.Contains(buf.String(), "status 503") {
		t.Errorf("error should appear in output, got %q", buf.String())
	}
}
