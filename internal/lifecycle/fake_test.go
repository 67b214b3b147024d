package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/sls-dart/cli/internal/build"
	"github.com/poruru/sls-dart/cli/internal/service"
)

type fakeRegistry struct {
	servicePath     string
	providerName    string
	providerRuntime string
	order           []string
	functions       map[string]*service.Function
	section         []byte
	devExclusionOff bool
	writes          int
}

func newFakeRegistry(servicePath string) *fakeRegistry {
	return &fakeRegistry{
		servicePath:  servicePath,
		providerName: "aws",
		functions:    map[string]*service.Function{},
	}
}

func (r *fakeRegistry) add(name, handler, runtime string) *fakeRegistry {
	r.order = append(r.order, name)
	r.functions[name] = &service.Function{Name: name, Handler: handler, Runtime: runtime}
	return r
}

func (r *fakeRegistry) ServicePath() string     { return r.servicePath }
func (r *fakeRegistry) ProviderName() string    { return r.providerName }
func (r *fakeRegistry) ProviderRuntime() string { return r.providerRuntime }

func (r *fakeRegistry) SetProviderRuntime(runtime string) {
	r.writes++
	r.providerRuntime = runtime
}

func (r *fakeRegistry) FunctionNames() []string {
	return append([]string(nil), r.order...)
}

func (r *fakeRegistry) Function(name string) (service.Function, error) {
	fn, ok := r.functions[name]
	if !ok {
		return service.Function{}, service.ErrUnknownFunction
	}
	return *fn, nil
}

func (r *fakeRegistry) SetFunctionArtifact(name, artifact string) error {
	fn, ok := r.functions[name]
	if !ok {
		return service.ErrUnknownFunction
	}
	r.writes++
	fn.Artifact = artifact
	return nil
}

func (r *fakeRegistry) SetFunctionRuntime(name, runtime string) error {
	fn, ok := r.functions[name]
	if !ok {
		return service.ErrUnknownFunction
	}
	r.writes++
	fn.Runtime = runtime
	return nil
}

func (r *fakeRegistry) DisableDevDependencyExclusion() { r.devExclusionOff = true }

func (r *fakeRegistry) DartSection() ([]byte, error) { return r.section, nil }

// fakeCommandRunner stands in for the container CLI. On success it writes
// the compiled binary the build script would have moved into /target.
type fakeCommandRunner struct {
	calls [][]string
	err   error
}

func (f *fakeCommandRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return f.err
	}
	stage := ""
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-v" && strings.HasSuffix(args[i+1], ":/target") {
			stage = strings.TrimSuffix(args[i+1], ":/target")
		}
	}
	if stage == "" || len(args) == 0 {
		return errors.New("no target mount")
	}
	_, rest, _ := strings.Cut(args[len(args)-1], "mv bootstrap /target/")
	script, _, _ := strings.Cut(rest, ";")
	return os.WriteFile(filepath.Join(stage, script), []byte("ELF"), 0o755)
}

type fakePassRunner struct {
	passes []build.Pass
	result build.Result
	err    error
}

func (f *fakePassRunner) Run(_ context.Context, pass build.Pass) (build.Result, error) {
	f.passes = append(f.passes, pass)
	return f.result, f.err
}

type fakeImages struct {
	present bool
	err     error
	refs    []string
}

func (f *fakeImages) Present(_ context.Context, ref string) (bool, error) {
	f.refs = append(f.refs, ref)
	return f.present, f.err
}

type recordLogger struct {
	warnings []string
}

func (l *recordLogger) Info(interface{}, ...interface{}) {}

func (l *recordLogger) Warn(msg interface{}, _ ...interface{}) {
	l.warnings = append(l.warnings, msg.(string))
}

func (l *recordLogger) Error(interface{}, ...interface{}) {}
