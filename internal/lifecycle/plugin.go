// Where: cli/internal/lifecycle/plugin.go
// What: Dart build plugin bound to the orchestrator's function registry.
// Why: Translate registry state into a build pass and write the outcomes back.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/config"
	"github.com/poruru/sls-dart/cli/internal/constants"
	"github.com/poruru/sls-dart/cli/internal/container"
	"github.com/poruru/sls-dart/cli/internal/meta"
	"github.com/poruru/sls-dart/cli/internal/paths"
	"github.com/poruru/sls-dart/cli/internal/service"
)

// Registry is the orchestrator's function registry as seen by the plugin.
type Registry interface {
	ServicePath() string
	ProviderName() string
	ProviderRuntime() string
	SetProviderRuntime(runtime string)
	FunctionNames() []string
	Function(name string) (service.Function, error)
	SetFunctionArtifact(name, artifact string) error
	SetFunctionRuntime(name, runtime string) error
	DisableDevDependencyExclusion()
	DartSection() ([]byte, error)
}

// PassRunner executes one build pass.
type PassRunner interface {
	Run(ctx context.Context, pass build.Pass) (build.Result, error)
}

// ImageLookup reports whether a toolchain image is available locally.
type ImageLookup interface {
	Present(ctx context.Context, ref string) (bool, error)
}

// Options carries the orchestrator's invocation options.
type Options struct {
	Stage    string
	Function string
}

// Deps holds the collaborators used to construct a Plugin.
type Deps struct {
	Runner container.CommandRunner
	Images ImageLookup
	Logger build.Logger
	Global config.GlobalConfig
}

// Plugin builds every Dart function of a registry for one stage.
type Plugin struct {
	Registry    Registry
	Options     Options
	Config      config.BuildConfig
	Paths       paths.Paths
	Coordinator PassRunner
	Images      ImageLookup
	Logger      build.Logger
}

// New resolves configuration and paths for the registry. It also turns off
// the orchestrator's dev-dependency exclusion, which only applies to
// node_modules trees.
func New(registry Registry, opts Options, deps Deps) (*Plugin, error) {
	if registry == nil {
		return nil, errRegistryNil
	}
	section, err := registry.DartSection()
	if err != nil {
		return nil, fmt.Errorf("read custom.dart: %w", err)
	}
	cfg, err := config.Resolve(section, deps.Global)
	if err != nil {
		return nil, &build.ConfigurationError{Key: "custom.dart", Err: err}
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, &build.ConfigurationError{Key: "buildTimeout", Err: err}
	}

	source := strings.TrimSpace(cfg.DockerPath)
	if source == "" {
		source = registry.ServicePath()
	}
	p, err := paths.Resolve(source, opts.Stage)
	if errors.Is(err, paths.ErrInvalidStage) {
		return nil, &build.ConfigurationError{Key: "stage", Err: err}
	}
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	registry.DisableDevDependencyExclusion()

	var runner build.ContainerRunner
	if deps.Runner != nil {
		runner = container.NewBuildRunner(deps.Runner, timeout)
	}
	return &Plugin{
		Registry:    registry,
		Options:     opts,
		Config:      cfg,
		Paths:       p,
		Coordinator: build.NewCoordinator(p, cfg, runner, logger),
		Images:      deps.Images,
		Logger:      logger,
	}, nil
}

// Hooks registers Build for every served lifecycle event.
func (p *Plugin) Hooks(d *Dispatcher) error {
	hook := func(ctx context.Context) error {
		_, err := p.Build(ctx)
		return err
	}
	for _, event := range Events {
		if err := d.Register(event, hook); err != nil {
			return err
		}
	}
	return nil
}

// Supported reports whether the registry's provider is one the plugin builds for.
func (p *Plugin) Supported() bool {
	return p.Registry.ProviderName() == meta.SupportedProvider
}

// Build runs one pass and records the resulting archives in the registry.
// Registries of other providers are left alone. The registry is only
// modified after the whole pass succeeded.
func (p *Plugin) Build(ctx context.Context) (build.Result, error) {
	if !p.Supported() {
		return build.Result{}, nil
	}
	if p.Coordinator == nil {
		return build.Result{}, errCoordinatorNil
	}

	pass, err := p.Pass()
	if err != nil {
		return build.Result{}, err
	}
	p.preflight(ctx)

	result, err := p.Coordinator.Run(ctx, pass)
	if err != nil {
		return build.Result{}, err
	}
	if err := p.apply(result); err != nil {
		return build.Result{}, err
	}
	return result, nil
}

// Pass collects the build targets: the selected function only when
// Options.Function is set, otherwise every function in registry order.
func (p *Plugin) Pass() (build.Pass, error) {
	names := p.Registry.FunctionNames()
	if selected := strings.TrimSpace(p.Options.Function); selected != "" {
		names = []string{selected}
	}

	targets := make([]build.FunctionTarget, 0, len(names))
	for _, name := range names {
		fn, err := p.Registry.Function(name)
		if err != nil {
			return build.Pass{}, &build.ConfigurationError{Key: "function", Function: name, Err: err}
		}
		targets = append(targets, build.FunctionTarget{
			Name:     fn.Name,
			Handler:  fn.Handler,
			Runtime:  fn.Runtime,
			Artifact: fn.Artifact,
		})
	}
	return build.Pass{Targets: targets, ProviderRuntime: p.Registry.ProviderRuntime()}, nil
}

func (p *Plugin) apply(result build.Result) error {
	for _, outcome := range result.List() {
		name := outcome.Target.Name
		if err := p.Registry.SetFunctionArtifact(name, outcome.ArtifactPath); err != nil {
			return err
		}
		if strings.TrimSpace(outcome.Target.Runtime) == meta.Runtime {
			if err := p.Registry.SetFunctionRuntime(name, meta.ProvidedRuntime); err != nil {
				return err
			}
		}
	}
	if strings.TrimSpace(p.Registry.ProviderRuntime()) == meta.Runtime {
		p.Registry.SetProviderRuntime(meta.ProvidedRuntime)
	}
	return nil
}

// preflight warns when the toolchain image is missing locally. It never
// pulls and never fails the pass.
func (p *Plugin) preflight(ctx context.Context) {
	if p.Images == nil || container.ResolveCLI() != constants.DefaultDockerCLI {
		return
	}
	ref := container.ImageRef(p.Config.DockerImage, p.Config.DockerTag)
	present, err := p.Images.Present(ctx, ref)
	if err != nil {
		p.Logger.Warn("Could not inspect local images", "image", ref, "err", err)
		return
	}
	if !present {
		p.Logger.Warn("Build image not found locally; the container runtime will pull it", "image", ref)
	}
}
