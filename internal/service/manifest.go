// Where: cli/internal/service/manifest.go
// What: serverless.yml loading, registry view, and write-back.
// Why: Expose the orchestrator's function registry while preserving the document layout.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotMapping      = errors.New("manifest root must be a mapping")
	ErrUnknownFunction = errors.New("unknown function")

	errNoTarget = errors.New("manifest target path is empty")
)

// Function is the registry entry of one function.
type Function struct {
	Name     string
	Handler  string
	Runtime  string
	Artifact string
}

// Manifest is a serverless.yml document opened for reading and write-back.
type Manifest struct {
	path string
	doc  *yaml.Node
	root *yaml.Node
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	m, err := Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", abs, err)
	}
	m.path = abs
	return m, nil
}

// Parse builds a Manifest from raw YAML without a backing file.
func Parse(payload []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{newMapping()}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return &Manifest{doc: &doc, root: doc.Content[0]}, nil
}

// Path is the manifest file location ("" for parsed manifests).
func (m *Manifest) Path() string {
	return m.path
}

// ServicePath is the directory holding the manifest.
func (m *Manifest) ServicePath() string {
	if m.path == "" {
		return ""
	}
	return filepath.Dir(m.path)
}

// ProviderName returns provider.name.
func (m *Manifest) ProviderName() string {
	return scalar(lookup(m.root, "provider", "name"))
}

// ProviderRuntime returns provider.runtime.
func (m *Manifest) ProviderRuntime() string {
	return scalar(lookup(m.root, "provider", "runtime"))
}

// SetProviderRuntime writes provider.runtime.
func (m *Manifest) SetProviderRuntime(runtime string) {
	setScalar(ensureMapping(m.root, "provider"), "runtime", runtime)
}

// FunctionNames lists functions in document order.
func (m *Manifest) FunctionNames() []string {
	fns := lookup(m.root, "functions")
	if fns == nil || fns.Kind != yaml.MappingNode {
		return nil
	}
	names := make([]string, 0, len(fns.Content)/2)
	for i := 0; i+1 < len(fns.Content); i += 2 {
		names = append(names, fns.Content[i].Value)
	}
	return names
}

// Function returns the registry entry for name.
func (m *Manifest) Function(name string) (Function, error) {
	node := lookup(m.root, "functions", name)
	if node == nil {
		return Function{}, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return Function{
		Name:     name,
		Handler:  scalar(lookup(node, "handler")),
		Runtime:  scalar(lookup(node, "runtime")),
		Artifact: scalar(lookup(node, "package", "artifact")),
	}, nil
}

// SetFunctionArtifact writes functions.<name>.package.artifact.
func (m *Manifest) SetFunctionArtifact(name, artifact string) error {
	node := lookup(m.root, "functions", name)
	if node == nil || node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	setScalar(ensureMapping(node, "package"), "artifact", artifact)
	return nil
}

// SetFunctionRuntime writes functions.<name>.runtime.
func (m *Manifest) SetFunctionRuntime(name, runtime string) error {
	node := lookup(m.root, "functions", name)
	if node == nil || node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	setScalar(node, "runtime", runtime)
	return nil
}

// DisableDevDependencyExclusion sets package.excludeDevDependencies to false
// so the orchestrator does not try to prune a node_modules tree that a Dart
// service does not have.
func (m *Manifest) DisableDevDependencyExclusion() {
	pkg := ensureMapping(m.root, "package")
	setValue(pkg, "excludeDevDependencies", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
}

// DartSection returns custom.dart re-encoded as YAML, or nil when absent.
func (m *Manifest) DartSection() ([]byte, error) {
	node := lookup(m.root, "custom", "dart")
	if node == nil {
		return nil, nil
	}
	return yaml.Marshal(node)
}

// Encode renders the manifest back to YAML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m.doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs writes the manifest to path, creating its directory. The file the
// manifest was loaded from is left untouched unless path names it.
func (m *Manifest) SaveAs(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errNoTarget
	}
	payload, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomicwriter.WriteFile(path, payload, 0o644)
}
