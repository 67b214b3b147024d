// Where: cli/internal/config/global.go
// What: Global config load/save helpers.
// Why: Let operators pin image/tag defaults for every service on a machine.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/poruru/sls-dart/cli/internal/constants"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents $XDG_CONFIG_HOME/slsdart/config.yaml.
type GlobalConfig struct {
	Version  int         `yaml:"version"`
	Defaults BuildConfig `yaml:"defaults,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// GlobalConfigPath returns the path to the global config file.
// SLS_DART_CONFIG overrides the XDG location.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(constants.EnvConfigDir)); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return "", err
			}
			path = abs
		}
		return path, nil
	}
	return filepath.Join(xdg.ConfigHome, meta.ConfigDir, "config.yaml"), nil
}

// LoadGlobalConfig reads and parses the global configuration file.
// A missing file yields DefaultGlobalConfig.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGlobalConfig(), nil
		}
		return GlobalConfig{}, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}
