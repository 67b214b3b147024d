// Where: cli/internal/build/errors.go
// What: Build pass error taxonomy.
// Why: Let callers tell configuration, container, packaging, and filesystem failures apart.
package build

import (
	"errors"
	"fmt"

	"github.com/poruru/sls-dart/cli/internal/meta"
)

var (
	ErrConfiguration  = errors.New("build configuration error")
	ErrNoTargets      = errors.New("no Dart functions found")
	ErrContainerBuild = errors.New("container build failed")
	ErrPackaging      = errors.New("packaging failed")
	ErrFilesystem     = errors.New("stage filesystem error")

	errRunnerNil    = errors.New("container runner is nil")
	errStageOutside = errors.New("stage directory is not inside the build directory")
)

// ConfigurationError reports input the operator has to fix. Key names the
// configuration key involved.
type ConfigurationError struct {
	Key      string
	Function string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Err, ErrNoTargets) {
		return fmt.Sprintf(
			"%v. Use '%s: %s' in global or function configuration to use this plugin",
			ErrNoTargets, e.Key, meta.Runtime,
		)
	}
	if e.Function != "" {
		return fmt.Sprintf("function %s: invalid %s: %v", e.Function, e.Key, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return compact(ErrConfiguration, e.Err)
}

// ContainerBuildError reports a container that failed to start or exited
// with a non-zero status.
type ContainerBuildError struct {
	Function   string
	Handler    string
	ExitStatus *int
	Err        error
}

func (e *ContainerBuildError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("Dart build of %s (%s) encountered an error: %v", e.Function, e.Handler, e.Err)
	case e.ExitStatus != nil:
		return fmt.Sprintf("Dart build of %s (%s) encountered an error: exit status %d", e.Function, e.Handler, *e.ExitStatus)
	default:
		return fmt.Sprintf("Dart build of %s (%s) encountered an error", e.Function, e.Handler)
	}
}

func (e *ContainerBuildError) Unwrap() []error {
	return compact(ErrContainerBuild, e.Err)
}

// PackagingError reports an archive that could not be produced.
type PackagingError struct {
	Function string
	Artifact string
	Err      error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("error zipping artifact %s for %s: %v", e.Artifact, e.Function, e.Err)
}

func (e *PackagingError) Unwrap() []error {
	return compact(ErrPackaging, e.Err)
}

// FilesystemError reports a stage directory that could not be locked,
// wiped, or created.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() []error {
	return compact(ErrFilesystem, e.Err)
}

func compact(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
