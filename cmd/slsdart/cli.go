// Where: cli/cmd/slsdart/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/poruru/sls-dart/cli/internal/commands"
	"github.com/poruru/sls-dart/cli/internal/constants"
	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"github.com/poruru/sls-dart/cli/internal/publish"
)

var logOutput io.Writer = os.Stderr

var newDockerClient = func() (container.DockerClient, error) {
	client, err := container.NewDockerClient()
	if err != nil {
		return nil, err
	}
	return client, nil
}

// buildDependencies constructs the runtime dependencies of the CLI.
// The Docker SDK client only backs the image preflight, so a client that
// cannot be created disables the preflight instead of failing the command.
func buildDependencies() (commands.Dependencies, io.Closer) {
	logger := log.NewWithOptions(logOutput, log.Options{
		Prefix:          meta.LogPrefix,
		ReportTimestamp: !isTerminal(logOutput),
	})

	deps := commands.Dependencies{
		Out:     os.Stdout,
		Runner:  container.ExecRunner{},
		Logger:  logger,
		Publish: publish.NewClientFactory(),
	}
	if container.ResolveCLI() != constants.DefaultDockerCLI {
		return deps, nil
	}

	client, err := newDockerClient()
	if err != nil {
		logger.Debug("docker client unavailable; skipping image preflight", "err", err)
		return deps, nil
	}
	deps.Images = container.ImageChecker{Client: client}
	return deps, asCloser(client)
}

// isTerminal reports whether w is an interactive terminal. Orchestrator and
// CI logs get timestamps; terminals do not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// asCloser attempts to cast the Docker client to an io.Closer.
// Returns nil if the client does not implement the Closer interface.
func asCloser(client container.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
