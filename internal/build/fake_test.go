package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/sls-dart/cli/internal/container"
)

// fakeRunner simulates the container by dropping the compiled binary into
// the stage directory under the script name.
type fakeRunner struct {
	requests []container.BuildRequest
	status   int
	err      error
}

func (f *fakeRunner) Run(_ context.Context, req container.BuildRequest) container.Result {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return container.Result{Err: f.err}
	}
	if f.status != 0 {
		status := f.status
		return container.Result{ExitStatus: &status}
	}
	name := scriptFromRequest(req.Script)
	_ = os.WriteFile(filepath.Join(req.StageRoot, name), []byte("native:"+name), 0o755)
	status := 0
	return container.Result{ExitStatus: &status}
}

// scriptFromRequest extracts the target name from "mv bootstrap /target/<name>;".
func scriptFromRequest(line string) string {
	_, rest, ok := strings.Cut(line, "mv bootstrap /target/")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, ";")
	return name
}

type recordPackager struct {
	calls [][2]string
	err   error
}

func (p *recordPackager) Pack(binaryPath, archivePath string) error {
	p.calls = append(p.calls, [2]string{binaryPath, archivePath})
	if p.err != nil {
		return p.err
	}
	return os.WriteFile(archivePath, []byte("zip"), 0o644)
}
