// Where: cli/cmd/slsdart/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies is deterministic.
package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/docker/docker/api/types/image"
	"github.com/poruru/sls-dart/cli/internal/container"
)

type fakeDockerClient struct {
	closed bool
}

func (*fakeDockerClient) ImageList(_ context.Context, _ image.ListOptions) ([]image.Summary, error) {
	return nil, nil
}

func (f *fakeDockerClient) Close() error {
	f.closed = true
	return nil
}

func stubDockerClient(t *testing.T, fn func() (container.DockerClient, error)) {
	t.Helper()
	orig := newDockerClient
	origLog := logOutput
	t.Cleanup(func() {
		newDockerClient = orig
		logOutput = origLog
	})
	newDockerClient = fn
	logOutput = io.Discard
}

func TestBuildDependenciesWiresPreflight(t *testing.T) {
	t.Setenv("SLS_DOCKER_CLI", "")
	client := &fakeDockerClient{}
	stubDockerClient(t, func() (container.DockerClient, error) { return client, nil })

	deps, closer := buildDependencies()
	if deps.Runner == nil || deps.Logger == nil || deps.Publish == nil {
		t.Fatalf("expected runner, logger, and publish factory: %+v", deps)
	}
	if deps.Images == nil {
		t.Fatalf("expected image preflight")
	}
	if closer == nil {
		t.Fatalf("expected closer for docker client")
	}
	_ = closer.Close()
	if !client.closed {
		t.Fatalf("expected docker client to be closed")
	}
}

func TestBuildDependenciesClientError(t *testing.T) {
	t.Setenv("SLS_DOCKER_CLI", "")
	stubDockerClient(t, func() (container.DockerClient, error) { return nil, errors.New("client") })

	deps, closer := buildDependencies()
	if deps.Images != nil || closer != nil {
		t.Fatalf("expected preflight to be disabled")
	}
	if deps.Runner == nil {
		t.Fatalf("builds must still be possible")
	}
}

func TestBuildDependenciesSkipsDockerForOtherCLI(t *testing.T) {
	t.Setenv("SLS_DOCKER_CLI", "podman")
	called := false
	stubDockerClient(t, func() (container.DockerClient, error) {
		called = true
		return &fakeDockerClient{}, nil
	})

	deps, _ := buildDependencies()
	if called || deps.Images != nil {
		t.Fatalf("docker client must not be created for podman")
	}
}

func TestIsTerminalRejectsBuffers(t *testing.T) {
	if isTerminal(io.Discard) {
		t.Fatalf("io.Discard is not a terminal")
	}
}
