// Package codegen renders embedding-configuration models as generated Go
// source for the standalone-executable build pipeline.
//
// # Overview
//
// The build tooling constructs an EmbeddedConfig describing how the
// interpreter runtime is initialized inside the produced binary. Render
// turns that model into the literal text of an embedded.Config value, and
// WriteDefaultConfigSource wraps the literal in a documented declaration
// inside a generated source file the host Go toolchain compiles into the
// binary.
//
// # Components
//
// EmbeddedConfig: the data-only embedding configuration model. Run mode,
// allocator, and terminfo variants are built through constructors so a
// variant can never carry a mismatched payload.
//
// Render: a pure, deterministic function from model to literal source
// text. It is total over valid models: out-of-domain optimization-level
// and bytes-warning values clamp to the maximum case rather than fail.
//
// WriteDefaultConfigSource: emits the generated file, including the
// go:embed directive that makes the Go toolchain embed the packed
// resources blob at the host binary's build time.
//
// Manifest: the YAML surface the CLI reads to construct a model, with
// structural validation and the run-mode payload co-constraint enforced
// at construction time.
package codegen
