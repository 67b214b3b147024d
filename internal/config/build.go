// Where: cli/internal/config/build.go
// What: Build configuration model, defaults, and layering.
// Why: Merge built-in defaults, global defaults, and service overrides once per invocation.
package config

import (
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
)

const (
	DefaultDockerImage = "google/dart"
	DefaultDockerTag   = "2"
	DefaultLibPath     = "lib"
)

// BuildConfig is the resolved plugin configuration. It is immutable once
// resolved for an invocation.
type BuildConfig struct {
	DockerImage  string        `json:"dockerImage,omitempty" yaml:"dockerImage,omitempty"`
	DockerTag    string        `json:"dockerTag,omitempty" yaml:"dockerTag,omitempty"`
	DockerPath   string        `json:"dockerPath,omitempty" yaml:"dockerPath,omitempty"`
	LibPath      string        `json:"libPath,omitempty" yaml:"libPath,omitempty"`
	BuildTimeout string        `json:"buildTimeout,omitempty" yaml:"buildTimeout,omitempty"`
	KeepStage    bool          `json:"keepStage,omitempty" yaml:"keepStage,omitempty"`
	Publish      PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`
}

// PublishConfig configures the optional artifact publisher.
type PublishConfig struct {
	Bucket      string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix      string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Endpoint    string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	LedgerTable string `json:"ledgerTable,omitempty" yaml:"ledgerTable,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() BuildConfig {
	return BuildConfig{
		DockerImage: DefaultDockerImage,
		DockerTag:   DefaultDockerTag,
		LibPath:     DefaultLibPath,
	}
}

// Merge layers configs so that earlier layers win; zero-valued fields are
// filled from later layers.
func Merge(layers ...BuildConfig) (BuildConfig, error) {
	var merged BuildConfig
	for _, layer := range layers {
		if err := mergo.Merge(&merged, layer); err != nil {
			return BuildConfig{}, fmt.Errorf("merge config: %w", err)
		}
	}
	return merged, nil
}

// Resolve parses the service's custom.dart section and layers it over the
// global defaults and the built-in defaults.
func Resolve(section []byte, global GlobalConfig) (BuildConfig, error) {
	service, err := ParseSection(section)
	if err != nil {
		return BuildConfig{}, err
	}
	return Merge(service, global.Defaults, Defaults())
}

// Timeout parses BuildTimeout. Blank means no timeout.
func (c BuildConfig) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.BuildTimeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("buildTimeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("buildTimeout: must not be negative")
	}
	return d, nil
}

// PublishEnabled reports whether an upload bucket is configured.
func (c BuildConfig) PublishEnabled() bool {
	return strings.TrimSpace(c.Publish.Bucket) != ""
}
