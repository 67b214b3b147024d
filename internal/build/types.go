// Where: cli/internal/build/types.go
// What: Build pass inputs and outcomes.
// Why: Keep the coordinator free of side effects on caller-owned registry data.
package build

import (
	"strings"
)

// FunctionTarget is a read-only view of one registry function.
type FunctionTarget struct {
	Name     string
	Handler  string
	Runtime  string
	Artifact string
}

// HandlerScriptName is the handler up to its first dot ("index.main" -> "index").
func (t FunctionTarget) HandlerScriptName() string {
	script, _, _ := strings.Cut(strings.TrimSpace(t.Handler), ".")
	return script
}

// EffectiveRuntime falls back to the provider runtime when the function
// declares none.
func (t FunctionTarget) EffectiveRuntime(providerRuntime string) string {
	if runtime := strings.TrimSpace(t.Runtime); runtime != "" {
		return runtime
	}
	return strings.TrimSpace(providerRuntime)
}

// Pass is the input of one coordinator run.
type Pass struct {
	Targets         []FunctionTarget
	ProviderRuntime string
}

// BuildOutcome records where a target's archive lives. Built is false when an
// existing archive was reused.
type BuildOutcome struct {
	Target       FunctionTarget
	ArtifactPath string
	Built        bool
}

// Result maps target names to outcomes; Order keeps registry order.
type Result struct {
	Outcomes map[string]BuildOutcome
	Order    []string
}

func newResult() Result {
	return Result{Outcomes: map[string]BuildOutcome{}}
}

func (r *Result) add(outcome BuildOutcome) {
	name := outcome.Target.Name
	if _, ok := r.Outcomes[name]; !ok {
		r.Order = append(r.Order, name)
	}
	r.Outcomes[name] = outcome
}

// List returns outcomes in registry order.
func (r Result) List() []BuildOutcome {
	out := make([]BuildOutcome, 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, r.Outcomes[name])
	}
	return out
}

// BuiltCount is the number of targets compiled in this pass.
func (r Result) BuiltCount() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Built {
			count++
		}
	}
	return count
}

// Empty reports whether no target matched the managed runtime.
func (r Result) Empty() bool {
	return len(r.Order) == 0
}
