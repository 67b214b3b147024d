package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResetDirRemovesPreviousContent(t *testing.T) {
	stage := filepath.Join(t.TempDir(), "target", "dev")
	writeFixtureFile(t, filepath.Join(stage, "handler.zip"), "old")
	writeFixtureFile(t, filepath.Join(stage, "nested", "left.txt"), "over")

	if err := ResetDir(stage); err != nil {
		t.Fatalf("ResetDir: %v", err)
	}
	entries, err := os.ReadDir(stage)
	if err != nil {
		t.Fatalf("read stage: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty stage, got %d entries", len(entries))
	}
}

func TestResetDirCreatesMissing(t *testing.T) {
	stage := filepath.Join(t.TempDir(), "target", "prod")
	if err := ResetDir(stage); err != nil {
		t.Fatalf("ResetDir: %v", err)
	}
	info, err := os.Stat(stage)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected stage dir, got %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "handler.zip")
	if FileExists(path) {
		t.Fatalf("expected missing file")
	}
	writeFixtureFile(t, path, "zip")
	if !FileExists(path) {
		t.Fatalf("expected file to exist")
	}
	if FileExists(dir) {
		t.Fatalf("directories are not files")
	}
}

func TestWithLockRunsFunctionAndPropagatesError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "target")
	ran := false
	if err := WithLock(root, "dev", func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("WithLock: %v", err)
	}
	if !ran {
		t.Fatalf("expected function to run")
	}
	if _, err := os.Stat(filepath.Join(root, ".lock-dev")); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}

	boom := errors.New("boom")
	if err := WithLock(root, "dev", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := WithLock("", "dev", func() error { return nil }); err == nil {
		t.Fatalf("expected lock root error")
	}
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
