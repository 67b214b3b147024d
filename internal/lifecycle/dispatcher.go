// Where: cli/internal/lifecycle/dispatcher.go
// What: Lifecycle event dispatch table.
// Why: Map orchestrator hook events to handlers with an explicit setup and teardown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	EventPackageArtifacts = "before:package:createDeploymentArtifacts"
	EventDeployFunction   = "before:deploy:function:packageFunction"
	EventOfflineStart     = "before:offline:start"
	EventOfflineStartInit = "before:offline:start:init"
)

// Events lists the hooks served by the plugin, in registration order.
var Events = []string{
	EventPackageArtifacts,
	EventDeployFunction,
	EventOfflineStart,
	EventOfflineStartInit,
}

var (
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	errEventRequired    = errors.New("event name is required")
	errHookNil          = errors.New("hook is nil")
)

// HookFunc handles one lifecycle event.
type HookFunc func(ctx context.Context) error

// Dispatcher routes events to registered hooks. Hooks for one event run in
// registration order and stop at the first error.
type Dispatcher struct {
	mu     sync.Mutex
	hooks  map[string][]HookFunc
	closed bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{hooks: map[string][]HookFunc{}}
}

func (d *Dispatcher) Register(event string, fn HookFunc) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errEventRequired
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", errHookNil, event)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	d.hooks[event] = append(d.hooks[event], fn)
	return nil
}

// Dispatch runs the hooks of event. Events without hooks are ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, event string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	hooks := append([]HookFunc(nil), d.hooks[strings.TrimSpace(event)]...)
	d.mu.Unlock()

	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close drops every registration. Later calls to Register or Dispatch fail.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.hooks = nil
}
