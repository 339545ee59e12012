package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "farmstand.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("loaded product listings", zap.Int("count", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug should be filtered): %q", len(lines), data)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if rec["msg"] != "loaded product listings" {
		t.Fatalf("msg = %v, want loaded product listings", rec["msg"])
	}
	if rec["logger"] != "farmstand" {
		t.Fatalf("logger = %v, want farmstand", rec["logger"])
	}
	if rec["count"] != float64(3) {
		t.Fatalf("count = %v, want 3", rec["count"])
	}
	if _, ok := rec["ts"]; !ok {
		t.Fatalf("record missing ts: %v", rec)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farmstand.log")

	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("requesting product listings")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "requesting product listings") {
		t.Fatalf("debug record missing: %q", data)
	}
}

func TestNew_RejectsEmptyPath(t *testing.T) {
	if _, err := New("", false); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestNewConsole_Levels(t *testing.T) {
	logger, err := NewConsole(false)
	if err != nil {
		t.Fatalf("NewConsole returned error: %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be disabled without verbose")
	}

	verbose, err := NewConsole(true)
	if err != nil {
		t.Fatalf("NewConsole returned error: %v", err)
	}
	if !verbose.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be enabled with verbose")
	}
}
