// Where: cli/internal/commands/command_context.go
// What: Manifest and plugin setup shared by build-related commands.
// Why: Resolve the registry, configuration, and collaborators the same way for every command.
package commands

import (
	"fmt"

	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/lifecycle"
	"github.com/poruru/sls-dart/cli/internal/service"
)

type commandContext struct {
	Manifest *service.Manifest
	Plugin   *lifecycle.Plugin
}

func resolveCommandContext(cli CLI, deps Dependencies) (commandContext, error) {
	manifest, err := service.Load(cli.Config)
	if err != nil {
		return commandContext{}, fmt.Errorf("load manifest: %w", err)
	}
	_, global, err := loadGlobalConfig(deps)
	if err != nil {
		return commandContext{}, err
	}

	runner := deps.Runner
	if runner == nil {
		runner = container.ExecRunner{}
	}
	plugin, err := lifecycle.New(manifest, lifecycle.Options{
		Stage:    cli.Stage,
		Function: cli.Function,
	}, lifecycle.Deps{
		Runner: runner,
		Images: deps.Images,
		Logger: deps.Logger,
		Global: global,
	})
	if err != nil {
		return commandContext{}, err
	}
	return commandContext{Manifest: manifest, Plugin: plugin}, nil
}
