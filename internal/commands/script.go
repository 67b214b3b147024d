// Where: cli/internal/commands/script.go
// What: Build script preview command.
// Why: Show the exact shell line a container build would run for a handler.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/config"
	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/paths"
	"github.com/poruru/sls-dart/cli/internal/script"
	"github.com/poruru/sls-dart/cli/internal/service"
)

type ScriptCmd struct {
	Handler string `arg:"" help:"Function handler (e.g. index.main)"`
	Docker  bool   `help:"Print the full container CLI invocation"`
}

// runScript renders the build script. The manifest is optional; without
// one the global and built-in defaults apply.
func runScript(cli CLI, deps Dependencies, out io.Writer) int {
	_, global, err := loadGlobalConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}

	var section []byte
	sourceDir := ""
	if manifest, err := service.Load(cli.Config); err == nil {
		if section, err = manifest.DartSection(); err != nil {
			return exitWithError(out, err)
		}
		sourceDir = manifest.ServicePath()
	} else if !os.IsNotExist(err) {
		return exitWithError(out, fmt.Errorf("load manifest: %w", err))
	}

	cfg, err := config.Resolve(section, global)
	if err != nil {
		return exitWithError(out, err)
	}
	name := build.FunctionTarget{Handler: cli.Script.Handler}.HandlerScriptName()
	line, err := script.Render(script.Params{
		script.ParamLibPath: strings.TrimSpace(cfg.LibPath),
		script.ParamScript:  name,
	})
	if err != nil {
		return exitWithError(out, err)
	}

	if !cli.Script.Docker {
		writeLine(out, line)
		return 0
	}
	if strings.TrimSpace(cfg.DockerPath) != "" {
		sourceDir = cfg.DockerPath
	}
	p, err := paths.Resolve(sourceDir, cli.Stage)
	if err != nil {
		return exitWithError(out, err)
	}
	args := container.BuildArgs(container.BuildRequest{
		Image:      cfg.DockerImage,
		Tag:        cfg.DockerTag,
		SourceRoot: p.SourceRoot,
		StageRoot:  p.StageRoot,
		Script:     line,
	})
	args[len(args)-1] = fmt.Sprintf("%q", line)
	writeLine(out, container.ResolveCLI()+" "+strings.Join(args, " "))
	return 0
}
