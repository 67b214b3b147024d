// Where: cli/internal/container/build_test.go
// What: Tests for containerized build invocation.
// Why: Ensure the CLI contract and failure mapping stay stable.
package container

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"reflect"
	"testing"
	"time"
)

func testRequest() BuildRequest {
	return BuildRequest{
		Image:      "google/dart",
		Tag:        "2",
		SourceRoot: "/srv/app",
		StageRoot:  "/srv/app/target/dev",
		Script:     "echo ok;",
	}
}

func TestBuildRunnerBuildsCommand(t *testing.T) {
	runner := &fakeRunner{}
	build := &BuildRunner{Runner: runner, CLI: "docker"}

	res := build.Run(context.Background(), testRequest())
	if res.Failed() {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.ExitStatus == nil || *res.ExitStatus != 0 {
		t.Fatalf("expected exit status 0, got %v", res.ExitStatus)
	}

	expected := []string{
		"run",
		"-v", "/srv/app:/app",
		"-v", "/srv/app/target/dev:/target",
		"-i",
		"google/dart:2",
		"sh", "-c", "echo ok;",
	}
	if !reflect.DeepEqual(runner.args, expected) {
		t.Fatalf("unexpected args: %v", runner.args)
	}
	if runner.name != "docker" {
		t.Fatalf("unexpected cli: %s", runner.name)
	}
	if runner.dir != "/srv/app" {
		t.Fatalf("unexpected working dir: %s", runner.dir)
	}
}

func TestNewBuildRunnerHonorsCLIOverride(t *testing.T) {
	t.Setenv("SLS_DOCKER_CLI", "podman")
	runner := &fakeRunner{}

	NewBuildRunner(runner, 0).Run(context.Background(), testRequest())
	if runner.name != "podman" {
		t.Fatalf("expected podman, got %s", runner.name)
	}
}

func TestNewBuildRunnerDefaultsToDocker(t *testing.T) {
	t.Setenv("SLS_DOCKER_CLI", "")
	if got := NewBuildRunner(&fakeRunner{}, 0).CLI; got != "docker" {
		t.Fatalf("expected docker, got %s", got)
	}
}

func TestBuildRunnerReportsExitStatus(t *testing.T) {
	exitErr := exec.Command("sh", "-c", "exit 3").Run()
	if exitErr == nil {
		t.Fatalf("expected exit error from sh")
	}
	runner := &fakeRunner{err: fmt.Errorf("run docker: %w", exitErr)}
	build := &BuildRunner{Runner: runner, CLI: "docker"}

	res := build.Run(context.Background(), testRequest())
	if !res.Failed() {
		t.Fatalf("expected failure")
	}
	if res.Err != nil {
		t.Fatalf("exit status must not be reported as launch error: %v", res.Err)
	}
	if res.ExitStatus == nil || *res.ExitStatus != 3 {
		t.Fatalf("expected exit status 3, got %v", res.ExitStatus)
	}
}

func TestBuildRunnerReportsLaunchError(t *testing.T) {
	launch := errors.New("executable file not found in $PATH")
	build := &BuildRunner{Runner: &fakeRunner{err: launch}, CLI: "nerdctl"}

	res := build.Run(context.Background(), testRequest())
	if !errors.Is(res.Err, launch) {
		t.Fatalf("expected launch error, got %v", res.Err)
	}
	if res.ExitStatus != nil {
		t.Fatalf("expected no exit status, got %d", *res.ExitStatus)
	}
}

func TestBuildRunnerTimeout(t *testing.T) {
	runner := &fakeRunner{block: true}
	build := &BuildRunner{Runner: runner, CLI: "docker", Timeout: 10 * time.Millisecond}

	res := build.Run(context.Background(), testRequest())
	if !errors.Is(res.Err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", res.Err)
	}
}

func TestBuildRunnerValidatesRequest(t *testing.T) {
	runner := &fakeRunner{}
	build := &BuildRunner{Runner: runner}

	req := testRequest()
	req.Image = ""
	if res := build.Run(context.Background(), req); !errors.Is(res.Err, errImageRequired) {
		t.Fatalf("expected image error, got %v", res.Err)
	}
	if runner.calls != 0 {
		t.Fatalf("runner must not be invoked for invalid requests")
	}

	if res := (&BuildRunner{}).Run(context.Background(), testRequest()); !errors.Is(res.Err, errCommandRunnerNil) {
		t.Fatalf("expected nil runner error, got %v", res.Err)
	}
}

func TestImageRefWithoutTag(t *testing.T) {
	if got := ImageRef("registry.local/dart", ""); got != "registry.local/dart" {
		t.Fatalf("unexpected ref: %s", got)
	}
}
