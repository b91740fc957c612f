package codegen

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML surface the CLI reads to construct an embedding
// configuration model. Structural validation happens at load time;
// variant/payload co-constraints are enforced when the model is built, so
// the renderer never sees a malformed configuration.
type Manifest struct {
	Isolated bool `yaml:"isolated"`

	StdioEncoding string `yaml:"stdio_encoding,omitempty"`
	StdioErrors   string `yaml:"stdio_errors,omitempty"`

	OptimizeLevel int      `yaml:"optimize_level"`
	SysPaths      []string `yaml:"sys_paths,omitempty"`
	BytesWarning  int      `yaml:"bytes_warning"`

	SiteImport        bool `yaml:"site_import"`
	UserSiteDirectory bool `yaml:"user_site_directory"`
	IgnoreEnvironment bool `yaml:"ignore_environment"`
	Inspect           bool `yaml:"inspect"`
	Interactive       bool `yaml:"interactive"`
	LegacyFSEncoding  bool `yaml:"legacy_fs_encoding"`
	LegacyStdio       bool `yaml:"legacy_stdio"`
	WriteBytecode     bool `yaml:"write_bytecode"`
	UnbufferedStdio   bool `yaml:"unbuffered_stdio"`
	ParserDebug       bool `yaml:"parser_debug"`
	Quiet             bool `yaml:"quiet"`
	Verbose           int  `yaml:"verbose"`

	RawAllocator string `yaml:"raw_allocator,omitempty" validate:"omitempty,oneof=system arena runtime"`

	FilesystemImporter bool `yaml:"filesystem_importer"`
	SysFrozen          bool `yaml:"sys_frozen"`
	SysBundleMarker    bool `yaml:"sys_bundle_marker"`

	Terminfo ManifestTerminfo `yaml:"terminfo"`

	WriteModulesDirectoryEnv string `yaml:"write_modules_directory_env,omitempty"`

	Run ManifestRun `yaml:"run" validate:"required"`

	// Script optionally names the packaging Starlark script evaluated
	// alongside this manifest.
	Script string `yaml:"script,omitempty"`
}

// ManifestTerminfo configures terminfo database resolution.
type ManifestTerminfo struct {
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=dynamic none static"`
	Path string `yaml:"path,omitempty"`
}

// ManifestRun configures the run mode. Exactly one payload field may be
// set, and only for the mode that uses it.
type ManifestRun struct {
	Mode   string `yaml:"mode" validate:"required,oneof=none repl module eval file"`
	Module string `yaml:"module,omitempty"`
	Code   string `yaml:"code,omitempty"`
	Path   string `yaml:"path,omitempty"`
}

// LoadManifest reads and validates a manifest file. Unknown YAML keys are
// rejected so typos surface as load errors instead of silently dropped
// settings.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	return &m, nil
}

// Model builds the embedding configuration model from the manifest. Run
// mode and terminfo variant/payload mismatches are construction errors
// here; the renderer assumes the invariant already holds.
func (m *Manifest) Model() (*EmbeddedConfig, error) {
	run, err := m.runMode()
	if err != nil {
		return nil, err
	}

	terminfo, err := m.terminfo()
	if err != nil {
		return nil, err
	}

	return &EmbeddedConfig{
		Isolated:                 m.Isolated,
		StdioEncodingName:        optionalField(m.StdioEncoding),
		StdioEncodingErrors:      optionalField(m.StdioErrors),
		OptimizeLevel:            m.OptimizeLevel,
		SysPaths:                 m.SysPaths,
		BytesWarning:             m.BytesWarning,
		SiteImport:               m.SiteImport,
		UserSiteDirectory:        m.UserSiteDirectory,
		IgnoreEnvironment:        m.IgnoreEnvironment,
		Inspect:                  m.Inspect,
		Interactive:              m.Interactive,
		LegacyFSEncoding:         m.LegacyFSEncoding,
		LegacyStdio:              m.LegacyStdio,
		WriteBytecode:            m.WriteBytecode,
		UnbufferedStdio:          m.UnbufferedStdio,
		ParserDebug:              m.ParserDebug,
		Quiet:                    m.Quiet,
		Verbose:                  m.Verbose,
		RawAllocator:             allocatorFromName(m.RawAllocator),
		FilesystemImporter:       m.FilesystemImporter,
		SysFrozen:                m.SysFrozen,
		SysBundleMarker:          m.SysBundleMarker,
		Terminfo:                 terminfo,
		WriteModulesDirectoryEnv: optionalField(m.WriteModulesDirectoryEnv),
		Run:                      run,
	}, nil
}

func (m *Manifest) runMode() (RunMode, error) {
	r := m.Run

	payloads := 0
	for _, p := range []string{r.Module, r.Code, r.Path} {
		if p != "" {
			payloads++
		}
	}

	switch r.Mode {
	case "none", "repl":
		if payloads != 0 {
			return RunMode{}, fmt.Errorf("run mode %q carries no payload, but one was given", r.Mode)
		}
		if r.Mode == "repl" {
			return RunModeRepl(), nil
		}
		return RunModeNone(), nil
	case "module":
		if r.Module == "" || payloads != 1 {
			return RunMode{}, fmt.Errorf("run mode \"module\" requires exactly the module payload")
		}
		return RunModeModule(r.Module), nil
	case "eval":
		if r.Code == "" || payloads != 1 {
			return RunMode{}, fmt.Errorf("run mode \"eval\" requires exactly the code payload")
		}
		return RunModeEval(r.Code), nil
	case "file":
		if r.Path == "" || payloads != 1 {
			return RunMode{}, fmt.Errorf("run mode \"file\" requires exactly the path payload")
		}
		return RunModeFile(r.Path), nil
	default:
		return RunMode{}, fmt.Errorf("unknown run mode %q", r.Mode)
	}
}

func (m *Manifest) terminfo() (Terminfo, error) {
	t := m.Terminfo

	switch t.Mode {
	case "", "dynamic":
		if t.Path != "" {
			return Terminfo{}, fmt.Errorf("terminfo mode \"dynamic\" does not take a path")
		}
		return Terminfo{Mode: TerminfoDynamic}, nil
	case "none":
		if t.Path != "" {
			return Terminfo{}, fmt.Errorf("terminfo mode \"none\" does not take a path")
		}
		return Terminfo{Mode: TerminfoNone}, nil
	case "static":
		if t.Path == "" {
			return Terminfo{}, fmt.Errorf("terminfo mode \"static\" requires a path")
		}
		return Terminfo{Mode: TerminfoStatic, Path: t.Path}, nil
	default:
		return Terminfo{}, fmt.Errorf("unknown terminfo mode %q", t.Mode)
	}
}

func allocatorFromName(name string) RawAllocator {
	switch name {
	case "arena":
		return RawAllocatorArena
	case "runtime":
		return RawAllocatorRuntimeDefault
	default:
		return RawAllocatorSystem
	}
}

func optionalField(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
