// Where: cli/internal/script/script.go
// What: Container build script model and renderer.
// Why: Keep the in-container command sequence structured until the container boundary.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"mvdan.cc/sh/v3/syntax"
)

const (
	ParamLibPath = "libPath"
	ParamScript  = "script"
)

var (
	ErrMissingParam = errors.New("missing script parameter")
	ErrUnknownParam = errors.New("unknown script parameter")
	ErrUnsafeValue  = errors.New("unsafe script parameter value")
	ErrMalformed    = errors.New("malformed build script")
)

// safeValue admits path-like tokens only; anything else could change the
// meaning of the rendered shell line.
var safeValue = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)

// Params maps placeholder names to their substituted values.
type Params map[string]string

// Step is one command of the build script.
type Step struct {
	Name    string
	Command string
}

// Script is an ordered command sequence with declared placeholders.
type Script struct {
	Params []string
	Steps  []Step
}

// DartNative compiles <libPath>/<script>.dart into a native bootstrap binary
// and moves it into the mounted target directory under the script name.
// Tool paths match the google/dart image layout.
var DartNative = Script{
	Params: []string{ParamLibPath, ParamScript},
	Steps: []Step{
		{Name: "cache", Command: "export PUB_CACHE=/tmp"},
		{Name: "workdir", Command: "cd $(mktemp -d)"},
		{Name: "copy", Command: "cp -Rp /app/* ."},
		{Name: "deps", Command: "/usr/lib/dart/bin/pub get"},
		{Name: "compile", Command: "/usr/lib/dart/bin/dart2native {{ .libPath }}/{{ .script }}.dart -o bootstrap"},
		{Name: "collect", Command: "mv bootstrap /target/{{ .script }}"},
	},
}

// Render validates params and produces the single shell line executed by
// `sh -c` inside the container.
func (s Script) Render(params Params) (string, error) {
	if err := s.validate(params); err != nil {
		return "", err
	}

	data := make(map[string]string, len(params))
	for key, value := range params {
		data[key] = value
	}

	rendered := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		line, err := renderStep(step, data)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, line)
	}
	line := strings.Join(rendered, "; ") + ";"

	if _, err := syntax.NewParser().Parse(strings.NewReader(line), "build.sh"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return line, nil
}

// Render renders the default Dart native script.
func Render(params Params) (string, error) {
	return DartNative.Render(params)
}

// CheckPath accepts relative path-like values that stay inside the
// directory they are resolved against: no leading "/" and no ".." segment.
func CheckPath(value string) error {
	if !safeValue.MatchString(value) {
		return fmt.Errorf("%w: %q", ErrUnsafeValue, value)
	}
	if strings.HasPrefix(value, "/") {
		return fmt.Errorf("%w: %q is absolute", ErrUnsafeValue, value)
	}
	for _, segment := range strings.Split(value, "/") {
		if segment == ".." {
			return fmt.Errorf("%w: %q climbs out of its directory", ErrUnsafeValue, value)
		}
	}
	return nil
}

func (s Script) validate(params Params) error {
	declared := make(map[string]struct{}, len(s.Params))
	for _, name := range s.Params {
		declared[name] = struct{}{}
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := declared[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownParam, key)
		}
		if err := CheckPath(params[key]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	for _, name := range s.Params {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
	}
	return nil
}

func renderStep(step Step, data map[string]string) (string, error) {
	tmpl, err := template.New(step.Name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(step.Command)
	if err != nil {
		return "", fmt.Errorf("%w: step %s: %v", ErrMalformed, step.Name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: step %s: %v", ErrMissingParam, step.Name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
