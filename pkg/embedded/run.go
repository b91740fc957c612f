package embedded

// RunModeKind discriminates the run mode variants.
type RunModeKind int

const (
	// RunKindNone starts the interpreter and does nothing.
	RunKindNone RunModeKind = iota

	// RunKindRepl starts an interactive shell.
	RunKindRepl

	// RunKindModule imports and runs a named module as __main__.
	RunKindModule

	// RunKindEval evaluates inline code.
	RunKindEval

	// RunKindFile runs code from a file path.
	RunKindFile
)

// RunMode describes what the embedded interpreter does on startup. Values
// are built through the constructors below so a variant can never carry
// the wrong payload.
type RunMode struct {
	kind    RunModeKind
	payload string
}

// RunNone returns the no-op run mode.
func RunNone() RunMode {
	return RunMode{kind: RunKindNone}
}

// RunRepl returns the interactive-shell run mode.
func RunRepl() RunMode {
	return RunMode{kind: RunKindRepl}
}

// RunModule returns the run mode that executes the named module.
func RunModule(module string) RunMode {
	return RunMode{kind: RunKindModule, payload: module}
}

// RunEval returns the run mode that evaluates the given code.
func RunEval(code string) RunMode {
	return RunMode{kind: RunKindEval, payload: code}
}

// RunFile returns the run mode that executes the file at path.
func RunFile(path string) RunMode {
	return RunMode{kind: RunKindFile, payload: path}
}

// Kind returns the variant tag.
func (m RunMode) Kind() RunModeKind {
	return m.kind
}

// Payload returns the module name, code text, or file path for the
// variants that carry one, and the empty string otherwise.
func (m RunMode) Payload() string {
	return m.payload
}

// TerminfoMode discriminates terminfo database resolution strategies.
type TerminfoMode int

const (
	TerminfoModeDynamic TerminfoMode = iota
	TerminfoModeNone
	TerminfoModeStatic
)

// TerminfoResolution describes how the embedded runtime locates the
// terminfo database.
type TerminfoResolution struct {
	mode TerminfoMode
	path string
}

// TerminfoDynamic resolves the terminfo database at runtime using
// well-known locations.
func TerminfoDynamic() TerminfoResolution {
	return TerminfoResolution{mode: TerminfoModeDynamic}
}

// TerminfoNone disables terminfo resolution.
func TerminfoNone() TerminfoResolution {
	return TerminfoResolution{mode: TerminfoModeNone}
}

// TerminfoStatic resolves the terminfo database from a fixed path baked
// into the configuration.
func TerminfoStatic(path string) TerminfoResolution {
	return TerminfoResolution{mode: TerminfoModeStatic, path: path}
}

// Mode returns the resolution strategy.
func (t TerminfoResolution) Mode() TerminfoMode {
	return t.mode
}

// Path returns the static database path for TerminfoModeStatic.
func (t TerminfoResolution) Path() string {
	return t.path
}
