package events

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/rs/zerolog"
)

// EventBuild fires after each completed build pass
const EventBuild = "build"

// ThenNames are aliases of EventBuild accepted wherever an event is named
var ThenNames = []string{"then", "after"}

// canonical maps an event alias to the event it stands for
func canonical(event string) string {
	for _, alias := range ThenNames {
		if event == alias {
			return EventBuild
		}
	}
	return event
}

// Stats summarizes one completed build pass
type Stats struct {
	Hash      string
	StartTime time.Time
	EndTime   time.Time
	Errors    []string
	Warnings  []string
}

// Duration returns how long the pass took
func (s Stats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// HasErrors reports whether the pass produced errors
func (s Stats) HasErrors() bool {
	return len(s.Errors) > 0
}

// Callback runs after a build pass
type Callback func(ctx context.Context, stats Stats) error

// Dispatcher holds callbacks per event
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Callback
	logger    zerolog.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[string][]Callback),
		logger:    logging.GetLogger("events"),
	}
}

// Listen registers cb for event. Callbacks run in registration order.
func (d *Dispatcher) Listen(event string, cb Callback) error {
	if event == "" {
		return errors.New(errors.ErrInvalidInput, "event name cannot be empty")
	}
	if cb == nil {
		return errors.Newf(errors.ErrInvalidInput, "nil callback for event %q", event)
	}

	event = canonical(event)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[event] = append(d.listeners[event], cb)
	return nil
}

// Count returns the number of callbacks registered for event
func (d *Dispatcher) Count(event string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[canonical(event)])
}

// Dispatch runs the callbacks of event sequentially. The first failing
// callback stops the remaining ones.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, stats Stats) error {
	event = canonical(event)
	d.mu.RLock()
	callbacks := append([]Callback(nil), d.listeners[event]...)
	d.mu.RUnlock()

	d.logger.Debug().Str("event", event).Int("callbacks", len(callbacks)).Msg("Dispatching event")

	for i, cb := range callbacks {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, errors.ErrCallbackFailed, "%s callbacks cancelled", event)
		}
		if err := cb(ctx, stats); err != nil {
			d.logger.Error().Err(err).Str("event", event).Int("callback", i).Msg("Callback failed")
			return errors.Wrapf(err, errors.ErrCallbackFailed, "%s callback %d failed", event, i).
				WithDetail("event", event).
				WithDetail("index", i)
		}
	}
	return nil
}

// Then registers cb to run after every build pass
func Then(d *Dispatcher, cb Callback) error {
	return d.Listen(EventBuild, cb)
}

// Async adapts a callback that completes later. The returned callback
// waits for the first value on the channel, or for ctx to end. A channel
// closed without a value counts as success.
func Async(fn func(ctx context.Context, stats Stats) <-chan error) Callback {
	return func(ctx context.Context, stats Stats) error {
		done := fn(ctx, stats)
		if done == nil {
			return nil
		}
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
