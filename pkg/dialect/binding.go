package dialect

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
)

// contextKey is the reserved thread-local key the context is bound
// under. Thread locals are invisible to script code, so the key can
// never collide with a user-definable identifier.
const contextKey = "oxbow.build_context"

// ErrContextNotFound is returned by Resolve on a thread that was never
// bound. Its cause is always a registration-order bug in the host, never
// user input, so it is a distinct error rather than a generic lookup
// failure.
var ErrContextNotFound = errors.New("build context not bound to evaluation thread")

// Bind installs ctx on the thread. Exactly one context may be bound per
// thread; a second Bind fails under the collision policy.
func Bind(thread *starlark.Thread, ctx *Context) error {
	if thread.Local(contextKey) != nil {
		return fmt.Errorf("thread %q already has a build context bound", thread.Name)
	}
	thread.SetLocal(contextKey, ctx)
	return nil
}

// Resolve returns the context bound to the thread the extension function
// is executing on. Every thread that can reach an extension function
// must have been bound first.
func Resolve(thread *starlark.Thread) (*Context, error) {
	ctx, ok := thread.Local(contextKey).(*Context)
	if !ok {
		return nil, fmt.Errorf("thread %q: %w", thread.Name, ErrContextNotFound)
	}
	return ctx, nil
}
