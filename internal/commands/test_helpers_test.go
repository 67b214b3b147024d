package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru/sls-dart/cli/internal/publish"
)

const dartManifest = `service: hello
provider:
  name: aws
  runtime: dart
  region: eu-west-1
functions:
  hello:
    handler: index.hello
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "serverless.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func testDeps(t *testing.T, runner *fakeRunner) Dependencies {
	t.Helper()
	t.Setenv("SLS_DOCKER_CLI", "docker")
	globalPath := filepath.Join(t.TempDir(), "config.yaml")
	deps := Dependencies{
		GlobalConfigPath: func() (string, error) { return globalPath, nil },
	}
	if runner != nil {
		deps.Runner = runner
	}
	return deps
}

// fakeRunner stands in for the container CLI and drops the compiled binary
// into the mounted target directory.
type fakeRunner struct {
	calls int
	err   error
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ string, args ...string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	var stage string
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-v" && strings.HasSuffix(args[i+1], ":/target") {
			stage = strings.TrimSuffix(args[i+1], ":/target")
		}
	}
	_, rest, _ := strings.Cut(args[len(args)-1], "mv bootstrap /target/")
	name, _, _ := strings.Cut(rest, ";")
	return os.WriteFile(filepath.Join(stage, name), []byte("ELF"), 0o755)
}

type fakeS3 struct {
	puts []publish.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, input publish.PutObjectInput) error {
	f.puts = append(f.puts, input)
	return nil
}

type fakeDynamo struct {
	records []publish.Record
}

func (f *fakeDynamo) PutItem(_ context.Context, _ string, record publish.Record) error {
	f.records = append(f.records, record)
	return nil
}

type fakeFactory struct {
	s3        *fakeS3
	dynamo    *fakeDynamo
	endpoints []string
}

func (f *fakeFactory) S3(_ context.Context, endpoint string) (publish.S3API, error) {
	f.endpoints = append(f.endpoints, endpoint)
	return f.s3, nil
}

func (f *fakeFactory) DynamoDB(_ context.Context, endpoint string) (publish.DynamoDBAPI, error) {
	f.endpoints = append(f.endpoints, endpoint)
	return f.dynamo, nil
}
