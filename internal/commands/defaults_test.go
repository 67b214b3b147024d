package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru/sls-dart/cli/internal/config"
)

func TestRunDefaultsSetPersistsAndApplies(t *testing.T) {
	globalPath := filepath.Join(t.TempDir(), "slsdart", "config.yaml")
	var out bytes.Buffer
	deps := Dependencies{
		Out:              &out,
		GlobalConfigPath: func() (string, error) { return globalPath, nil },
	}

	if code := Run([]string{"defaults", "set", "dockerImage", "mirror.local/dart"}, deps); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out.String())
	}
	if code := Run([]string{"defaults", "set", "keepStage", "true"}, deps); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out.String())
	}

	cfg, err := config.LoadGlobalConfig(globalPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Defaults.DockerImage != "mirror.local/dart" || !cfg.Defaults.KeepStage {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}

	out.Reset()
	if code := Run([]string{"defaults", "show"}, deps); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{globalPath, "mirror.local/dart", "lib"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
}

func TestRunDefaultsSetRejectsUnknownKey(t *testing.T) {
	globalPath := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	deps := Dependencies{
		Out:              &out,
		GlobalConfigPath: func() (string, error) { return globalPath, nil },
	}

	if code := Run([]string{"defaults", "set", "image", "x"}, deps); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "image") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
