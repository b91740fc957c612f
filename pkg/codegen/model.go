package codegen

// RawAllocator selects the raw memory allocator the embedded interpreter
// is configured with.
type RawAllocator int

const (
	// RawAllocatorSystem uses the platform malloc.
	RawAllocatorSystem RawAllocator = iota

	// RawAllocatorArena uses the host binary's arena allocator.
	RawAllocatorArena

	// RawAllocatorRuntimeDefault defers to the interpreter runtime's own
	// default allocator.
	RawAllocatorRuntimeDefault
)

// TerminfoMode discriminates terminfo resolution strategies in the model.
type TerminfoMode int

const (
	TerminfoDynamic TerminfoMode = iota
	TerminfoNone
	TerminfoStatic
)

// Terminfo describes terminfo database resolution. The path is only
// meaningful for TerminfoStatic.
type Terminfo struct {
	Mode TerminfoMode
	Path string
}

// RunModeKind discriminates the run mode variants.
type RunModeKind int

const (
	RunNone RunModeKind = iota
	RunRepl
	RunModule
	RunEval
	RunFile
)

// RunMode is the tagged variant describing what the embedded interpreter
// does on startup. Construct values with the RunMode* constructors; the
// payload field exists only for the variants that need one, so a tag with
// the wrong payload is unrepresentable.
type RunMode struct {
	kind    RunModeKind
	payload string
}

// RunModeNone returns the no-op run mode.
func RunModeNone() RunMode {
	return RunMode{kind: RunNone}
}

// RunModeRepl returns the interactive-shell run mode.
func RunModeRepl() RunMode {
	return RunMode{kind: RunRepl}
}

// RunModeModule returns the run mode executing the named module.
func RunModeModule(module string) RunMode {
	return RunMode{kind: RunModule, payload: module}
}

// RunModeEval returns the run mode evaluating inline code.
func RunModeEval(code string) RunMode {
	return RunMode{kind: RunEval, payload: code}
}

// RunModeFile returns the run mode executing the file at path.
func RunModeFile(path string) RunMode {
	return RunMode{kind: RunFile, payload: path}
}

// Kind returns the variant tag.
func (m RunMode) Kind() RunModeKind {
	return m.kind
}

// Payload returns the module name, code text, or file path carried by the
// variant, if any.
func (m RunMode) Payload() string {
	return m.payload
}

// EmbeddedConfig is the embedding configuration model. It is data-only
// and independent of any renderer.
type EmbeddedConfig struct {
	// Isolated selects the isolated interpreter profile over the standard
	// environment-sensitive one.
	Isolated bool

	// StdioEncodingName and StdioEncodingErrors configure stdio encoding.
	// nil means "leave the interpreter default".
	StdioEncodingName   *string
	StdioEncodingErrors *string

	// OptimizeLevel is the bytecode optimization level. The logical
	// domain is {0, 1, 2}; rendering clamps anything else to 2.
	OptimizeLevel int

	// SysPaths is the ordered module search path list. An empty list
	// renders as "unset", not as an empty list.
	SysPaths []string

	// BytesWarning controls bytes/text comparison warnings. The logical
	// domain is {0, 1, 2} (none, warn, raise); rendering clamps anything
	// else to 2.
	BytesWarning int

	SiteImport        bool
	UserSiteDirectory bool
	IgnoreEnvironment bool
	Inspect           bool
	Interactive       bool
	LegacyFSEncoding  bool
	LegacyStdio       bool
	WriteBytecode     bool
	UnbufferedStdio   bool
	ParserDebug       bool
	Quiet             bool

	// Verbose renders as a presence flag: verbose iff nonzero.
	Verbose int

	RawAllocator RawAllocator

	FilesystemImporter bool

	// SysFrozen and SysBundleMarker are the self-contained-executable
	// detection markers.
	SysFrozen       bool
	SysBundleMarker bool

	Terminfo Terminfo

	// WriteModulesDirectoryEnv optionally names an environment variable
	// used to dump loaded-module diagnostics at runtime.
	WriteModulesDirectoryEnv *string

	Run RunMode
}
