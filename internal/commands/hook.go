// Where: cli/internal/commands/hook.go
// What: Lifecycle hook command.
// Why: Let the orchestrator trigger builds and pick up the rewritten manifest.
package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/poruru/sls-dart/cli/internal/lifecycle"
)

type HookCmd struct {
	Event string `arg:"" help:"Lifecycle event name (e.g. before:package:createDeploymentArtifacts)"`
}

// runHook builds for a served event and writes the rewritten manifest under
// the build directory, printing its path as the only output line. The
// service's own manifest is never modified. Events the plugin does not serve
// are acknowledged and ignored.
func runHook(cli CLI, deps Dependencies, out io.Writer) int {
	event := strings.TrimSpace(cli.Hook.Event)
	if !slices.Contains(lifecycle.Events, event) {
		plainUI(out).Info(fmt.Sprintf("ignoring event %s", event))
		return 0
	}

	cmdCtx, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	dispatcher := lifecycle.NewDispatcher()
	defer dispatcher.Close()
	if err := cmdCtx.Plugin.Hooks(dispatcher); err != nil {
		return exitWithError(out, err)
	}
	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		return exitWithError(out, err)
	}
	if !cmdCtx.Plugin.Supported() {
		return 0
	}
	target, err := writeGeneratedManifest(cmdCtx)
	if err != nil {
		return exitWithError(out, err)
	}
	writeLine(out, target)
	return 0
}

func writeGeneratedManifest(cmdCtx commandContext) (string, error) {
	target := cmdCtx.Plugin.Paths.Manifest()
	if err := cmdCtx.Manifest.SaveAs(target); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return target, nil
}
