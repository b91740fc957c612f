// Package dialect implements the oxbow packaging dialect: a sandboxed
// Starlark environment whose extension functions drive the packaging
// pipeline through a per-evaluation build context.
//
// # Overview
//
// Every evaluation gets a fresh Context bound to its Starlark thread
// under a reserved key. Extension functions resolve the context from the
// thread they are called on, mutate it while the evaluation runs, and
// lose that ability when the evaluation completes and the environment is
// frozen. Frozen contexts are safe to share across evaluations without
// locking; that is the only cross-evaluation sharing the design permits.
//
// # Components
//
// Context: the mutable per-evaluation build state (registered code
// signers, packaging backends, structured log sink).
//
// Bind/Resolve: install and look up the context on a thread. Resolve on a
// thread that was never bound fails with ErrContextNotFound, which always
// indicates a registration-order bug rather than bad user input.
//
// RegisterDialect: installs the fixed extension module set: code
// signing, static file resources, and one module per packaging backend.
//
// Evaluator: runs one script to completion, then freezes the environment
// and the context after verifying nothing reachable from the context
// still holds external mutable state.
package dialect
