// Package events runs user callbacks once a build pass completes.
//
// Callbacks are registered on a Dispatcher under an event name. The
// BuildCallbackPlugin taps a compiler's done hook and dispatches the build
// event with the pass statistics; callbacks run one after another and the
// first failure is returned to the build.
package events
