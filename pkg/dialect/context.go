package dialect

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
)

// ErrFrozen is returned by mutation attempts on a value whose evaluation
// has completed. Mutations after freeze must fail loudly, never
// silently no-op.
var ErrFrozen = errors.New("value is frozen")

// Backend is a packaging backend collaborator (application bundles,
// installers, package archives). Implementations live outside this
// package; builder values hand their accumulated state to one of these.
type Backend interface {
	// Name identifies the backend ("macos_bundle", "snap", "msi").
	Name() string

	// Build materializes a bundle described by spec into outDir and
	// returns the path of the produced artifact.
	Build(outDir string, spec BundleSpec) (string, error)
}

// BundleSpec is the declarative state a builder value hands to its
// backend.
type BundleSpec struct {
	Name  string
	Files map[string]string
	Meta  map[string]string
}

// Context holds the state one packaging script evaluation accumulates.
// It is created per evaluation, owned by that evaluation's thread, and
// either discarded or frozen when the evaluation completes.
type Context struct {
	logger   zerolog.Logger
	signers  []starlark.Value
	backends map[string]Backend
	frozen   bool
}

// NewContext returns a fresh, mutable context logging to logger.
func NewContext(logger zerolog.Logger) *Context {
	return &Context{
		logger:   logger,
		backends: make(map[string]Backend),
	}
}

// Logger returns the context's structured log sink.
func (c *Context) Logger() zerolog.Logger {
	return c.logger
}

// AddSigner appends a signer value registered by the code signing module.
func (c *Context) AddSigner(v starlark.Value) error {
	if c.frozen {
		return fmt.Errorf("cannot register signer: %w", ErrFrozen)
	}
	c.signers = append(c.signers, v)
	return nil
}

// Signers returns the registered signer values in registration order.
func (c *Context) Signers() []starlark.Value {
	out := make([]starlark.Value, len(c.signers))
	copy(out, c.signers)
	return out
}

// RegisterBackend installs a packaging backend collaborator. Backends are
// host-side objects, not script values, so they do not participate in
// the freeze walk.
func (c *Context) RegisterBackend(b Backend) error {
	if c.frozen {
		return fmt.Errorf("cannot register backend %q: %w", b.Name(), ErrFrozen)
	}
	c.backends[b.Name()] = b
	return nil
}

// BackendFor looks up a registered packaging backend by name.
func (c *Context) BackendFor(name string) (Backend, bool) {
	b, ok := c.backends[name]
	return b, ok
}

// Frozen reports whether the context has completed its evaluation.
func (c *Context) Frozen() bool {
	return c.frozen
}

// String implements starlark.Value.
func (c *Context) String() string {
	return fmt.Sprintf("<build_context signers=%d>", len(c.signers))
}

// Type implements starlark.Value.
func (c *Context) Type() string {
	return "BuildContext"
}

// Freeze implements starlark.Value. Freezing is terminal; it propagates
// to every registered signer. Use FreezeValue to verify the ownership
// graph before committing to the transition.
func (c *Context) Freeze() {
	if c.frozen {
		return
	}
	c.frozen = true
	for _, s := range c.signers {
		s.Freeze()
	}
}

// Truth implements starlark.Value.
func (c *Context) Truth() starlark.Bool {
	return starlark.True
}

// Hash implements starlark.Value.
func (c *Context) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", c.Type())
}

// OwnedValues implements Owner for the recursive freeze check.
func (c *Context) OwnedValues() []starlark.Value {
	return c.Signers()
}
