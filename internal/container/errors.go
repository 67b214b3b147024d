// Where: cli/internal/container/errors.go
// What: Shared error definitions for container builds.
// Why: Ensure consistent error wrapping without dynamic error creation.
package container

import "errors"

var (
	errCommandRunnerNil = errors.New("command runner is nil")
	errImageRequired    = errors.New("container image is required")
	errSourceRequired   = errors.New("source root is required")
	errStageRequired    = errors.New("stage root is required")
	errDockerClientNil  = errors.New("docker client is nil")

	// ErrTimeout marks a container build killed by the configured timeout.
	ErrTimeout = errors.New("container build timed out")
)
