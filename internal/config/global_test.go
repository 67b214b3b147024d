// Where: cli/internal/config/global_test.go
// What: Tests for global config helpers.
// Why: Ensure global config round-trips correctly.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGlobalConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := GlobalConfig{
		Version: 1,
		Defaults: BuildConfig{
			DockerImage: "registry.local/dart",
			DockerTag:   "2.19",
			Publish: PublishConfig{
				Bucket: "artifacts",
			},
		},
	}

	if err := SaveGlobalConfig(path, cfg); err != nil {
		t.Fatalf("save global config: %v", err)
	}

	loaded, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("config mismatch: expected %#v, got %#v", cfg, loaded)
	}
}

func TestLoadGlobalConfigMissingFile(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGlobalConfig()) {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestLoadGlobalConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadGlobalConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGlobalConfigPathHonorsOverride(t *testing.T) {
	baseDir := t.TempDir()
	overridePath := filepath.Join(baseDir, "custom", "config.yaml")
	t.Setenv("SLS_DART_CONFIG", overridePath)

	got, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("global config path: %v", err)
	}
	if got != overridePath {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestGlobalConfigPathDefaultsToXDG(t *testing.T) {
	t.Setenv("SLS_DART_CONFIG", "")

	got, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("global config path: %v", err)
	}
	if filepath.Base(got) != "config.yaml" || filepath.Base(filepath.Dir(got)) != "slsdart" {
		t.Fatalf("unexpected config path: %s", got)
	}
}
