// Where: cli/internal/commands/defaults.go
// What: Global build defaults commands.
// Why: Let operators set machine-wide defaults such as a mirrored toolchain image.
package commands

import (
	"fmt"
	"io"
	"strings"

	"dario.cat/mergo"
	"github.com/poruru/sls-dart/cli/internal/config"
	"github.com/poruru/sls-dart/cli/internal/ports"
	"gopkg.in/yaml.v3"
)

// DefaultsCmd groups global defaults subcommands.
type DefaultsCmd struct {
	Show DefaultsShowCmd `cmd:"" help:"Show global defaults and the config file location"`
	Set  DefaultsSetCmd  `cmd:"" help:"Set a global default (e.g. dockerImage)"`
}

type DefaultsShowCmd struct{}

type DefaultsSetCmd struct {
	Key   string `arg:"" help:"custom.dart key"`
	Value string `arg:"" help:"Value"`
}

func runDefaultsShow(_ CLI, deps Dependencies, out io.Writer) int {
	path, cfg, err := loadGlobalConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	effective, err := config.Merge(cfg.Defaults, config.Defaults())
	if err != nil {
		return exitWithError(out, err)
	}
	ports.NewConsoleUI(out).Block("⚙️", "Global defaults:", []ports.KeyValue{
		{Key: "config", Value: path},
		{Key: "dockerImage", Value: effective.DockerImage},
		{Key: "dockerTag", Value: effective.DockerTag},
		{Key: "libPath", Value: effective.LibPath},
		{Key: "buildTimeout", Value: valueOrNone(effective.BuildTimeout)},
		{Key: "keepStage", Value: effective.KeepStage},
	})
	return 0
}

// runDefaultsSet validates key=value as a custom.dart fragment and stores it
// over the existing global defaults.
func runDefaultsSet(cli CLI, deps Dependencies, out io.Writer) int {
	key := strings.TrimSpace(cli.Defaults.Set.Key)
	fragment, err := yaml.Marshal(map[string]any{key: scalarValue(cli.Defaults.Set.Value)})
	if err != nil {
		return exitWithError(out, err)
	}
	update, err := config.ParseSection(fragment)
	if err != nil {
		return exitWithError(out, err)
	}

	path, cfg, err := loadGlobalConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	if err := mergo.Merge(&cfg.Defaults, update, mergo.WithOverride); err != nil {
		return exitWithError(out, err)
	}
	if err := config.SaveGlobalConfig(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	plainUI(out).Info(fmt.Sprintf("updated %s: %s", key, cli.Defaults.Set.Value))
	return 0
}

// scalarValue keeps booleans typed so keepStage validates.
func scalarValue(raw string) any {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

func valueOrNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(none)"
	}
	return value
}
