// Where: cli/internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/config"
	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/lifecycle"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"github.com/poruru/sls-dart/cli/internal/publish"
	"github.com/poruru/sls-dart/cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap the container runner and the publish clients for fakes.
type Dependencies struct {
	Out              io.Writer
	Runner           container.CommandRunner
	Images           lifecycle.ImageLookup
	Logger           build.Logger
	Publish          publish.ClientFactory
	GlobalConfigPath func() (string, error)
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config     string        `short:"c" default:"${manifest}" help:"Path to the serverless service manifest"`
	Stage      string        `short:"s" env:"SLS_STAGE" default:"${stage}" help:"Deployment stage"`
	Function   string        `short:"f" help:"Build only this function"`
	EnvFile    string        `name:"env-file" help:"Path to .env file"`
	Hook       HookCmd       `cmd:"" help:"Handle an orchestrator lifecycle event"`
	Build      BuildCmd      `cmd:"" help:"Build Dart functions without touching the manifest"`
	Script     ScriptCmd     `cmd:"" help:"Print the container build script for a handler"`
	Publish    PublishCmd    `cmd:"" help:"Upload built archives to S3"`
	Defaults   DefaultsCmd   `cmd:"" help:"Manage global build defaults"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// cliVars supplies the ${...} defaults referenced in CLI tags.
func cliVars() kong.Vars {
	return kong.Vars{
		"manifest": meta.ManifestFile,
		"stage":    meta.DefaultStage,
	}
}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	ui := plainUI(out)

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.Slug),
		kong.Writers(out, out),
		cliVars(),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", cli.EnvFile, err))
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	ui.Warn("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"hook <event>":               runHook,
		"build":                      runBuild,
		"script <handler>":           runScript,
		"publish":                    runPublish,
		"defaults show":              runDefaultsShow,
		"defaults set <key> <value>": runDefaultsSet,
		"completion bash":            func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionBash(cli, out) },
		"completion zsh":             func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionZsh(cli, out) },
		"completion fish":            func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionFish(cli, out) },
		"version":                    func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(cli, out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, out io.Writer) int {
	plainUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs prints a short usage hint.
func runNoArgs(out io.Writer) int {
	ui := plainUI(out)
	ui.Info("Usage:")
	ui.Info("  slsdart hook <event> --config serverless.yml --stage <stage> [--function <name>]")
	ui.Info("")
	ui.Info("Try: slsdart --help")
	return 0
}

// loadGlobalConfig resolves the global config path and reads it.
func loadGlobalConfig(deps Dependencies) (string, config.GlobalConfig, error) {
	resolve := deps.GlobalConfigPath
	if resolve == nil {
		resolve = config.GlobalConfigPath
	}
	path, err := resolve()
	if err != nil {
		return "", config.GlobalConfig{}, err
	}
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return "", config.GlobalConfig{}, fmt.Errorf("load global config %s: %w", path, err)
	}
	if cfg.Version == 0 {
		cfg.Version = config.DefaultGlobalConfig().Version
	}
	return path, cfg, nil
}
