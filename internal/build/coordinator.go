// Where: cli/internal/build/coordinator.go
// What: Build pass orchestration across function targets.
// Why: Own stage reset, artifact reuse, container builds, and packaging in one ordered pass.
package build

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru/sls-dart/cli/internal/config"
	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/fileops"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"github.com/poruru/sls-dart/cli/internal/packager"
	"github.com/poruru/sls-dart/cli/internal/paths"
	"github.com/poruru/sls-dart/cli/internal/script"
)

// ContainerRunner runs one containerized compile.
type ContainerRunner interface {
	Run(ctx context.Context, req container.BuildRequest) container.Result
}

// Packager wraps a compiled binary into an archive.
type Packager interface {
	Pack(binaryPath, archivePath string) error
}

// PackagerFunc adapts a function to Packager.
type PackagerFunc func(binaryPath, archivePath string) error

func (f PackagerFunc) Pack(binaryPath, archivePath string) error {
	return f(binaryPath, archivePath)
}

// Logger is the subset of charmbracelet/log used during a pass.
type Logger interface {
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Coordinator runs build passes for one stage. Targets are processed
// sequentially in registry order; the first failure aborts the pass.
type Coordinator struct {
	Paths    paths.Paths
	Config   config.BuildConfig
	Runner   ContainerRunner
	Packager Packager
	Script   script.Script
	Logger   Logger

	// ResetStage and Lock default to fileops.ResetDir and fileops.WithLock.
	ResetStage func(path string) error
	Lock       func(root, name string, fn func() error) error
}

// NewCoordinator wires the default packager and script.
func NewCoordinator(p paths.Paths, cfg config.BuildConfig, runner ContainerRunner, logger Logger) *Coordinator {
	return &Coordinator{
		Paths:    p,
		Config:   cfg,
		Runner:   runner,
		Packager: PackagerFunc(packager.Pack),
		Script:   script.DartNative,
		Logger:   logger,
	}
}

// Run executes one pass. The stage directory is recreated first unless
// Config.KeepStage is set; an archive already present at a target's
// deterministic path is reused without invoking the container.
func (c *Coordinator) Run(ctx context.Context, pass Pass) (Result, error) {
	lock := c.Lock
	if lock == nil {
		lock = fileops.WithLock
	}

	var (
		result Result
		runErr error
	)
	lockErr := lock(c.Paths.BuildRoot, c.Paths.Stage, func() error {
		result, runErr = c.run(ctx, pass)
		return nil
	})
	if lockErr != nil {
		return Result{}, &FilesystemError{Op: "lock", Path: c.Paths.BuildRoot, Err: lockErr}
	}
	return result, runErr
}

func (c *Coordinator) run(ctx context.Context, pass Pass) (Result, error) {
	logger := c.logger()

	if err := c.prepareStage(); err != nil {
		return Result{}, err
	}

	result := newResult()
	for _, target := range pass.Targets {
		if target.EffectiveRuntime(pass.ProviderRuntime) != meta.Runtime {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Result{}, &ContainerBuildError{Function: target.Name, Handler: target.Handler, Err: err}
		}

		name := target.HandlerScriptName()
		if err := script.CheckPath(name); err != nil {
			return Result{}, &ConfigurationError{Key: "handler", Function: target.Name, Err: err}
		}
		artifact := c.Paths.Artifact(name)
		logger.Info("Building Dart func", "function", target.Name, "handler", target.Handler)

		built := false
		if fileops.FileExists(artifact) {
			logger.Info("Reusing existing artifact", "function", target.Name, "artifact", artifact)
		} else {
			if err := c.buildTarget(ctx, target, name, artifact); err != nil {
				return Result{}, err
			}
			built = true
		}

		result.add(BuildOutcome{
			Target:       target,
			ArtifactPath: artifact,
			Built:        built,
		})
	}

	if result.Empty() {
		return Result{}, &ConfigurationError{Key: "runtime", Err: ErrNoTargets}
	}
	return result, nil
}

func (c *Coordinator) prepareStage() error {
	if !c.Paths.StageInside() {
		return &FilesystemError{Op: "prepare", Path: c.Paths.StageRoot, Err: errStageOutside}
	}
	if c.Config.KeepStage {
		if err := fileops.EnsureDir(c.Paths.StageRoot); err != nil {
			return &FilesystemError{Op: "create", Path: c.Paths.StageRoot, Err: err}
		}
		return nil
	}
	reset := c.ResetStage
	if reset == nil {
		reset = fileops.ResetDir
	}
	if err := reset(c.Paths.StageRoot); err != nil {
		return &FilesystemError{Op: "reset", Path: c.Paths.StageRoot, Err: err}
	}
	return nil
}

func (c *Coordinator) buildTarget(ctx context.Context, target FunctionTarget, name, artifact string) error {
	logger := c.logger()

	line, err := c.script().Render(script.Params{
		script.ParamLibPath: strings.TrimSpace(c.Config.LibPath),
		script.ParamScript:  name,
	})
	if err != nil {
		return &ConfigurationError{Key: "handler", Function: target.Name, Err: err}
	}

	if c.Runner == nil {
		return &ContainerBuildError{Function: target.Name, Handler: target.Handler, Err: errRunnerNil}
	}
	logger.Info("Running containerized build ...", "image", container.ImageRef(c.Config.DockerImage, c.Config.DockerTag))
	res := c.Runner.Run(ctx, container.BuildRequest{
		Image:      c.Config.DockerImage,
		Tag:        c.Config.DockerTag,
		SourceRoot: c.Paths.SourceRoot,
		StageRoot:  c.Paths.StageRoot,
		Script:     line,
	})
	if res.Failed() {
		buildErr := &ContainerBuildError{
			Function:   target.Name,
			Handler:    target.Handler,
			ExitStatus: res.ExitStatus,
			Err:        res.Err,
		}
		logger.Error("Dart build encountered an error", "function", target.Name, "err", buildErr)
		return buildErr
	}

	pack := c.Packager
	if pack == nil {
		pack = PackagerFunc(packager.Pack)
	}
	if err := pack.Pack(c.Paths.Bootstrap(name), artifact); err != nil {
		logger.Error("Error zipping artifact", "function", target.Name, "err", err)
		return &PackagingError{Function: target.Name, Artifact: artifact, Err: err}
	}
	return nil
}

func (c *Coordinator) script() script.Script {
	if len(c.Script.Steps) == 0 {
		return script.DartNative
	}
	return c.Script
}

func (c *Coordinator) logger() Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}
