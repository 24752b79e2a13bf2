package logger

import (
	"path/filepath"
	"testing"
)

func TestNewDebugMode(t *testing.T) {
	instance := New("debug", Options{})
	if instance == nil {
		t.Fatalf("expected logger instance in debug mode")
	}
	instance.Debug("debug message")
}

func TestNewReleaseModeWritesFile(t *testing.T) {
	dir := t.TempDir()
	instance := New("release", Options{Dir: dir, Filename: "service.log"})
	if instance == nil {
		t.Fatalf("expected logger instance in release mode")
	}
	instance.Info("release message")
	if err := instance.Sync(); err != nil {
		t.Logf("sync returned: %v", err)
	}
}

func TestResolveLogFilePath(t *testing.T) {
	dir := t.TempDir()
	logFilePath, err := resolveLogFilePath(Options{Dir: dir, Filename: "a.log"})
	if err != nil {
		t.Fatalf("resolveLogFilePath failed: %v", err)
	}
	if logFilePath != filepath.Join(dir, "a.log") {
		t.Fatalf("unexpected log file path: %s", logFilePath)
	}
}

func TestResolveLogFilePathDefaults(t *testing.T) {
	dir := t.TempDir()
	logFilePath, err := resolveLogFilePath(Options{Dir: dir})
	if err != nil {
		t.Fatalf("resolveLogFilePath failed: %v", err)
	}
	if filepath.Base(logFilePath) != defaultLogFilename {
		t.Fatalf("expected default filename, got %s", logFilePath)
	}
}

func TestNormalizePositiveInt(t *testing.T) {
	if got := normalizePositiveInt(0, 9); got != 9 {
		t.Fatalf("expected fallback 9, got %d", got)
	}
	if got := normalizePositiveInt(-1, 9); got != 9 {
		t.Fatalf("expected fallback 9, got %d", got)
	}
	if got := normalizePositiveInt(5, 9); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}
