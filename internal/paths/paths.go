// Where: cli/internal/paths/paths.go
// What: Source, build, and stage directory resolution.
// Why: Derive every build location once per invocation from config and stage.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru/sls-dart/cli/internal/meta"
)

// ErrInvalidStage rejects stage names that are not a single directory name.
var ErrInvalidStage = errors.New("invalid stage name")

// Paths holds the absolute directories used by one build pass.
type Paths struct {
	SourceRoot string
	BuildRoot  string
	StageRoot  string
	Stage      string
}

// Resolve computes Paths from a source directory candidate and a stage name.
// A blank stage falls back to meta.DefaultStage; any other stage must be a
// single path element. No filesystem access happens
// beyond reading the working directory for relative inputs.
func Resolve(sourceDir, stage string) (Paths, error) {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		stage = meta.DefaultStage
	}
	if err := checkStage(stage); err != nil {
		return Paths{}, err
	}
	src, err := filepath.Abs(strings.TrimSpace(sourceDir))
	if err != nil {
		return Paths{}, err
	}
	build := filepath.Join(src, meta.BuildDir)
	return Paths{
		SourceRoot: src,
		BuildRoot:  build,
		StageRoot:  filepath.Join(build, stage),
		Stage:      stage,
	}, nil
}

// Bootstrap is where the container leaves the compiled binary for script.
func (p Paths) Bootstrap(script string) string {
	return filepath.Join(p.StageRoot, script)
}

// Artifact is the deterministic archive location for script.
func (p Paths) Artifact(script string) string {
	return filepath.Join(p.StageRoot, script+meta.ArchiveExt)
}

// Manifest is where the rewritten service manifest of a pass is written.
// The source manifest is never modified by a build.
func (p Paths) Manifest() string {
	ext := filepath.Ext(meta.ManifestFile)
	base := strings.TrimSuffix(meta.ManifestFile, ext)
	return filepath.Join(p.BuildRoot, base+"."+p.Stage+ext)
}

// StageInside reports whether StageRoot is a strict descendant of BuildRoot.
func (p Paths) StageInside() bool {
	if p.BuildRoot == "" || p.StageRoot == "" {
		return false
	}
	rel, err := filepath.Rel(p.BuildRoot, p.StageRoot)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func checkStage(stage string) error {
	if stage == "." || stage == ".." || strings.ContainsAny(stage, `/\`) || filepath.Base(stage) != stage {
		return fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	return nil
}
