package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewEmptyPathIsNop(t *testing.T) {
	l, err := New("", "debug")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if l.Core().Enabled(-1) {
		t.Error("expected no-op logger to have every level disabled")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "yogapath.log")
	l, err := New(path, "warn")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync() //nolint:errcheck

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON warn entry, got:\n%s", out)
	}
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yogapath.log")
	l, err := New(path, "loud")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Debug("quiet")
	l.Info("normal")
	_ = l.Sync() //nolint:errcheck

	data, _ := os.ReadFile(path) //nolint:errcheck
	if strings.Contains(string(data), "quiet") || !strings.Contains(string(data), "normal") {
		t.Errorf("unexpected log contents:\n%s", data)
	}
}
