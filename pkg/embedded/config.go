// Package embedded defines the interpreter embedding contract shared by
// generated configuration sources and the runtime that consumes them.
//
// The oxbow pipeline generates a Go source file whose single public
// declaration constructs a Config value. The embedded runtime itself lives
// outside this repository; this package is the structural contract both
// sides compile against.
package embedded

// Opt is an explicitly-present optional value. Generated sources always
// spell out Some or None for every optional field so the constructed
// Config fully specifies the target structure's shape.
type Opt[T any] struct {
	set   bool
	value T
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{set: true, value: v}
}

// None is the explicit absent marker.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSome reports whether the value is present.
func (o Opt[T]) IsSome() bool {
	return o.set
}

// Get returns the wrapped value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// Profile selects one of the two mutually exclusive interpreter startup
// profiles.
type Profile int

const (
	// ProfileStandard initializes the interpreter with its conventional
	// environment-sensitive defaults.
	ProfileStandard Profile = iota

	// ProfileIsolated isolates the interpreter from the host environment
	// (no environment variables, no user site directories).
	ProfileIsolated
)

// OptimizationLevel controls bytecode optimization of embedded modules.
type OptimizationLevel int

const (
	OptimizationZero OptimizationLevel = iota
	OptimizationOne
	OptimizationTwo
)

// BytesWarning controls how the runtime reacts to implicit bytes/text
// comparisons.
type BytesWarning int

const (
	BytesWarningNone BytesWarning = iota
	BytesWarningWarn
	BytesWarningRaise
)

// Allocator selects the raw memory allocator backing the interpreter.
type Allocator int

const (
	// AllocatorSystem uses the platform malloc.
	AllocatorSystem Allocator = iota

	// AllocatorArena uses the host binary's arena allocator.
	AllocatorArena

	// AllocatorRuntimeDefault defers to the interpreter runtime's own
	// default allocator.
	AllocatorRuntimeDefault
)

// InterpreterConfig mirrors the interpreter's own initialization
// structure. Fields the packaging pipeline does not drive are still
// explicitly present in generated sources, as None.
type InterpreterConfig struct {
	Profile Profile

	ConfigureLocale Opt[bool]
	DevelopmentMode Opt[bool]
	FaultHandler    Opt[bool]
	HashSeed        Opt[uint64]
	HomeDir         Opt[string]
	ProgramName     Opt[string]

	StdioEncoding Opt[string]
	StdioErrors   Opt[string]

	OptimizationLevel Opt[OptimizationLevel]
	ModuleSearchPaths Opt[[]string]
	BytesWarning      Opt[BytesWarning]

	SiteImport        Opt[bool]
	UserSiteDirectory Opt[bool]
	UseEnvironment    Opt[bool]
	Inspect           Opt[bool]
	Interactive       Opt[bool]
	LegacyFSEncoding  Opt[bool]
	LegacyStdio       Opt[bool]
	WriteBytecode     Opt[bool]
	BufferedStdio     Opt[bool]
	ParserDebug       Opt[bool]
	Quiet             Opt[bool]
	Verbose           Opt[bool]
}

// Config is the top-level embedding configuration constructed by generated
// sources and handed to the embedded runtime at startup.
type Config struct {
	Interpreter InterpreterConfig

	RawAllocator Opt[Allocator]

	// NativeImporter enables the in-binary module importer backed by the
	// packed resources blob.
	NativeImporter     bool
	FilesystemImporter bool

	// PackedResources is the packed resources blob, embedded by the Go
	// toolchain at the host binary's build time.
	PackedResources Opt[[]byte]

	ExtraExtensionModules Opt[[]string]

	ArgvBytes bool

	// SysFrozen and SysBundleMarker are the self-contained-executable
	// detection markers exposed to embedded code.
	SysFrozen       bool
	SysBundleMarker bool

	TerminfoResolution TerminfoResolution

	// WriteModulesDirectoryEnv names an environment variable which, when
	// set at runtime, receives loaded-module diagnostics.
	WriteModulesDirectoryEnv Opt[string]

	Run RunMode
}
