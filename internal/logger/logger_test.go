package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sesctl.log")

	log, err := New(Options{JSON: true, File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Debug("hidden at info level")
	log.Info("employee created", zap.Int("id", 7))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 entry, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["msg"] != "employee created" || entry["level"] != "info" || entry["id"] != float64(7) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewDebugLevel(t *testing.T) {
	log, err := New(Options{Debug: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}

	log, err = New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug level to be disabled by default")
	}
}
