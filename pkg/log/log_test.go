package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	logger, err := New("info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger == nil {
		t.Fatal("New() returned nil logger")
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("shouting"); err == nil {
		t.Fatal("New() error = nil, want error for unknown level")
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattoo.log")

	logger, err := NewWithFile("debug", path)
	if err != nil {
		t.Fatalf("NewWithFile() error = %v", err)
	}

	logger.Info("configuration loaded")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "configuration loaded") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}
