// Where: cli/internal/commands/publish.go
// What: Artifact publish command.
// Why: Push built archives to an S3-compatible store and record them in a ledger table.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/fileops"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"github.com/poruru/sls-dart/cli/internal/paths"
	"github.com/poruru/sls-dart/cli/internal/ports"
	"github.com/poruru/sls-dart/cli/internal/publish"
)

var (
	errPublishNotConfigured = errors.New("publishing is not configured: set custom.dart.publish.bucket")
	errArtifactMissing      = errors.New("artifact not built yet; run `slsdart build` first")
)

type PublishCmd struct {
	Build bool `help:"Run a build pass before uploading"`
}

func runPublish(cli CLI, deps Dependencies, out io.Writer) int {
	cmdCtx, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	plugin := cmdCtx.Plugin
	cfg := plugin.Config
	if !cfg.PublishEnabled() {
		return exitWithError(out, errPublishNotConfigured)
	}

	// Targets are collected first; a build pass rewrites the runtimes.
	pass, err := plugin.Pass()
	if err != nil {
		return exitWithError(out, err)
	}
	ctx := context.Background()
	if cli.Publish.Build {
		if _, err := plugin.Build(ctx); err != nil {
			return exitWithError(out, err)
		}
	}
	artifacts, err := collectArtifacts(plugin.Paths, pass)
	if err != nil {
		return exitWithError(out, err)
	}

	factory := deps.Publish
	if factory == nil {
		factory = publish.NewClientFactory()
	}
	s3Client, err := factory.S3(ctx, cfg.Publish.Endpoint)
	if err != nil {
		return exitWithError(out, err)
	}
	uploader := publish.Uploader{
		Client: s3Client,
		Bucket: cfg.Publish.Bucket,
		Prefix: cfg.Publish.Prefix,
		Stage:  plugin.Paths.Stage,
	}
	records, err := uploader.Upload(ctx, artifacts)
	if err != nil {
		return exitWithError(out, err)
	}

	if cfg.Publish.LedgerTable != "" {
		dynamo, err := factory.DynamoDB(ctx, cfg.Publish.Endpoint)
		if err != nil {
			return exitWithError(out, err)
		}
		ledger := publish.Ledger{Client: dynamo, Table: cfg.Publish.LedgerTable}
		if err := ledger.Record(ctx, records); err != nil {
			return exitWithError(out, err)
		}
	}

	ui := ports.NewConsoleUI(out)
	rows := make([]ports.KeyValue, 0, len(records))
	for _, record := range records {
		rows = append(rows, ports.KeyValue{Key: record.Function, Value: fmt.Sprintf("s3://%s/%s", record.Bucket, record.Key)})
	}
	ui.Block("☁️", "Published artifacts:", rows)
	ui.Success(fmt.Sprintf("Published %d artifacts", len(records)))
	return 0
}

// collectArtifacts maps every Dart target of the pass to its archive on disk.
func collectArtifacts(p paths.Paths, pass build.Pass) ([]publish.Artifact, error) {
	var artifacts []publish.Artifact
	for _, target := range pass.Targets {
		if target.EffectiveRuntime(pass.ProviderRuntime) != meta.Runtime {
			continue
		}
		path := p.Artifact(target.HandlerScriptName())
		if !fileops.FileExists(path) {
			return nil, fmt.Errorf("%s: %w", target.Name, errArtifactMissing)
		}
		artifacts = append(artifacts, publish.Artifact{Function: target.Name, Path: path})
	}
	if len(artifacts) == 0 {
		return nil, &build.ConfigurationError{Key: "runtime", Err: build.ErrNoTargets}
	}
	return artifacts, nil
}
