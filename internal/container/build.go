// Where: cli/internal/container/build.go
// What: Containerized Dart build invocation.
// Why: Run the rendered script inside the toolchain image with source and stage mounted.
package container

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/poruru/sls-dart/cli/internal/constants"
	"github.com/poruru/sls-dart/cli/internal/envutil"
	"github.com/poruru/sls-dart/cli/internal/meta"
)

// BuildRequest describes one containerized compile.
type BuildRequest struct {
	Image      string
	Tag        string
	SourceRoot string
	StageRoot  string
	Script     string
}

// Result reports how the container process ended. Err is set when the
// process could not be started or was killed by the timeout; ExitStatus is
// set whenever the process ran to an exit.
type Result struct {
	ExitStatus *int
	Err        error
}

// Failed reports whether the build must be treated as fatal.
func (r Result) Failed() bool {
	return r.Err != nil || (r.ExitStatus != nil && *r.ExitStatus != 0)
}

// BuildRunner invokes the container CLI synchronously.
type BuildRunner struct {
	Runner  CommandRunner
	CLI     string
	Timeout time.Duration
}

// NewBuildRunner returns a BuildRunner whose CLI binary honors SLS_DOCKER_CLI.
func NewBuildRunner(runner CommandRunner, timeout time.Duration) *BuildRunner {
	return &BuildRunner{
		Runner:  runner,
		CLI:     ResolveCLI(),
		Timeout: timeout,
	}
}

// ResolveCLI returns the container CLI binary name.
func ResolveCLI() string {
	return envutil.Lookup(constants.EnvDockerCLI, constants.DefaultDockerCLI)
}

// BuildArgs assembles `run -v src:/app -v stage:/target -i image:tag sh -c script`.
func BuildArgs(req BuildRequest) []string {
	return []string{
		"run",
		"-v", req.SourceRoot + ":" + meta.SourceMount,
		"-v", req.StageRoot + ":" + meta.TargetMount,
		"-i",
		ImageRef(req.Image, req.Tag),
		"sh", "-c", req.Script,
	}
}

// ImageRef joins image and tag.
func ImageRef(image, tag string) string {
	if strings.TrimSpace(tag) == "" {
		return image
	}
	return image + ":" + tag
}

// Run executes the build and blocks until the container exits.
func (b *BuildRunner) Run(ctx context.Context, req BuildRequest) Result {
	if b.Runner == nil {
		return Result{Err: errCommandRunnerNil}
	}
	if err := validateRequest(req); err != nil {
		return Result{Err: err}
	}
	cli := strings.TrimSpace(b.CLI)
	if cli == "" {
		cli = constants.DefaultDockerCLI
	}

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	err := b.Runner.Run(ctx, req.SourceRoot, cli, BuildArgs(req)...)
	if err == nil {
		status := 0
		return Result{ExitStatus: &status}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Err: fmt.Errorf("%w after %s", ErrTimeout, b.Timeout)}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := exitErr.ExitCode()
		return Result{ExitStatus: &status}
	}
	return Result{Err: err}
}

func validateRequest(req BuildRequest) error {
	switch {
	case strings.TrimSpace(req.Image) == "":
		return errImageRequired
	case strings.TrimSpace(req.SourceRoot) == "":
		return errSourceRequired
	case strings.TrimSpace(req.StageRoot) == "":
		return errStageRequired
	}
	return nil
}
