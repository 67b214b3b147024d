// Where: cli/internal/commands/build.go
// What: Standalone build command.
// Why: Build Dart archives outside the orchestrator and report where they landed.
package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/ports"
)

type BuildCmd struct {
	Write bool `help:"Write the manifest with artifact paths and runtimes under the build directory"`
}

func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	result, err := cmdCtx.Plugin.Build(context.Background())
	if err != nil {
		return exitWithError(out, err)
	}
	ui := ports.NewConsoleUI(out)
	if result.Empty() {
		ui.Info(fmt.Sprintf("provider %q is not supported; nothing to build", cmdCtx.Manifest.ProviderName()))
		return 0
	}

	ui.Block("📦", "Dart artifacts:", outcomeRows(cmdCtx.Plugin.Paths.SourceRoot, result))
	if cli.Build.Write {
		target, err := writeGeneratedManifest(cmdCtx)
		if err != nil {
			return exitWithError(out, err)
		}
		ui.Info(fmt.Sprintf("manifest written to %s", target))
	}
	ui.Success(fmt.Sprintf("Built %d of %d Dart functions", result.BuiltCount(), len(result.Order)))
	return 0
}

func outcomeRows(root string, result build.Result) []ports.KeyValue {
	rows := make([]ports.KeyValue, 0, len(result.Order))
	for _, outcome := range result.List() {
		path := outcome.ArtifactPath
		if rel, err := filepath.Rel(root, path); err == nil {
			path = rel
		}
		if !outcome.Built {
			path += " (reused)"
		}
		rows = append(rows, ports.KeyValue{Key: outcome.Target.Name, Value: path})
	}
	return rows
}
