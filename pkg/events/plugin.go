package events

import (
	"context"
	"sync"
)

// BuildCallbackPluginName is the tap name on the done hook
const BuildCallbackPluginName = "BuildCallbackPlugin"

// DoneHook is the compiler hook fired after a build pass
type DoneHook interface {
	Tap(name string, fn func(ctx context.Context, stats Stats) error)
}

// BuildCallbackPlugin forwards completed passes to a callback
type BuildCallbackPlugin struct {
	callback Callback
}

// NewBuildCallbackPlugin creates the plugin for callback
func NewBuildCallbackPlugin(callback Callback) *BuildCallbackPlugin {
	return &BuildCallbackPlugin{callback: callback}
}

// Apply taps the done hook
func (p *BuildCallbackPlugin) Apply(hook DoneHook) {
	hook.Tap(BuildCallbackPluginName, func(ctx context.Context, stats Stats) error {
		return p.callback(ctx, stats)
	})
}

// DispatchTo returns a callback that dispatches the build event on d
func DispatchTo(d *Dispatcher) Callback {
	return func(ctx context.Context, stats Stats) error {
		return d.Dispatch(ctx, EventBuild, stats)
	}
}

type tap struct {
	name string
	fn   func(ctx context.Context, stats Stats) error
}

// Hooks is an in-process done hook for callers driving their own passes
type Hooks struct {
	mu   sync.Mutex
	taps []tap
}

// Tap implements DoneHook
func (h *Hooks) Tap(name string, fn func(ctx context.Context, stats Stats) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taps = append(h.taps, tap{name: name, fn: fn})
}

// Taps returns the tap names in order
func (h *Hooks) Taps() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, len(h.taps))
	for i, t := range h.taps {
		names[i] = t.name
	}
	return names
}

// Done fires the hook for a finished pass, stopping at the first failure
func (h *Hooks) Done(ctx context.Context, stats Stats) error {
	h.mu.Lock()
	taps := append([]tap(nil), h.taps...)
	h.mu.Unlock()

	for _, t := range taps {
		if err := t.fn(ctx, stats); err != nil {
			return err
		}
	}
	return nil
}
