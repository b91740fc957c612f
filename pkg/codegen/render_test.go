package codegen

import (
	"strconv"
	"strings"
	"testing"
)

// baseConfig returns a minimal valid model tests mutate per case.
func baseConfig() *EmbeddedConfig {
	return &EmbeddedConfig{
		OptimizeLevel: 0,
		Run:           RunModeNone(),
	}
}

func TestRender_OptimizationLevelCases(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{"zero", 0, "embedded.OptimizationZero"},
		{"one", 1, "embedded.OptimizationOne"},
		{"two", 2, "embedded.OptimizationTwo"},
		{"negative clamps to two", -1, "embedded.OptimizationTwo"},
		{"three clamps to two", 3, "embedded.OptimizationTwo"},
		{"large clamps to two", 99, "embedded.OptimizationTwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.OptimizeLevel = tt.level

			got := Render(cfg)
			if !strings.Contains(got, "OptimizationLevel: embedded.Some("+tt.want+")") {
				t.Errorf("level %d: expected case %s, rendered:\n%s", tt.level, tt.want, got)
			}
		})
	}
}

func TestRender_BytesWarningCases(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{"none", 0, "embedded.BytesWarningNone"},
		{"warn", 1, "embedded.BytesWarningWarn"},
		{"raise", 2, "embedded.BytesWarningRaise"},
		{"out of domain clamps to raise", 7, "embedded.BytesWarningRaise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.BytesWarning = tt.level

			got := Render(cfg)
			if !strings.Contains(got, "BytesWarning: embedded.Some("+tt.want+")") {
				t.Errorf("level %d: expected case %s", tt.level, tt.want)
			}
		})
	}
}

// runModeMarkers are the five variant constructors; every rendered
// literal must contain exactly one of them.
var runModeMarkers = []string{
	"embedded.RunNone(",
	"embedded.RunRepl(",
	"embedded.RunModule(",
	"embedded.RunEval(",
	"embedded.RunFile(",
}

func countRunModeMarkers(rendered string) int {
	n := 0
	for _, marker := range runModeMarkers {
		n += strings.Count(rendered, marker)
	}
	return n
}

func TestRender_RunModeVariants(t *testing.T) {
	tests := []struct {
		name    string
		run     RunMode
		marker  string
		payload string
	}{
		{"noop", RunModeNone(), "embedded.RunNone()", ""},
		{"repl", RunModeRepl(), "embedded.RunRepl()", ""},
		{"module", RunModeModule("myapp.main"), "embedded.RunModule(", "myapp.main"},
		{"eval", RunModeEval("import os; os.getcwd()"), "embedded.RunEval(", "import os; os.getcwd()"},
		{"file", RunModeFile("/app/main.dat"), "embedded.RunFile(", "/app/main.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Run = tt.run

			got := Render(cfg)
			if !strings.Contains(got, tt.marker) {
				t.Fatalf("expected marker %q in rendered literal", tt.marker)
			}
			if n := countRunModeMarkers(got); n != 1 {
				t.Errorf("expected exactly one run mode marker, found %d", n)
			}
			if tt.payload != "" && !strings.Contains(got, strconv.Quote(tt.payload)) {
				t.Errorf("expected payload %q rendered as %s", tt.payload, strconv.Quote(tt.payload))
			}
		})
	}
}

func TestRender_StringEscaping(t *testing.T) {
	// Hostile payloads must never terminate the generated literal early.
	tests := []struct {
		name    string
		payload string
	}{
		{"embedded quotes", `say "hello" and exit`},
		{"newlines", "line one\nline two"},
		{"backslashes", `C:\app\main.dat`},
		{"quote then newline", "\"\n\""},
		{"non-utf8 bytes", string([]byte{0xff, 0xfe, 'o', 'k'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Run = RunModeEval(tt.payload)

			got := Render(cfg)

			quoted := strconv.Quote(tt.payload)
			if !strings.Contains(got, quoted) {
				t.Fatalf("expected rendered literal to contain %s", quoted)
			}

			// The escaped form must round-trip to the original payload.
			roundTripped, err := strconv.Unquote(quoted)
			if err != nil {
				t.Fatalf("rendered string does not parse: %v", err)
			}
			if roundTripped != tt.payload {
				t.Errorf("escaping did not round-trip: got %q, want %q", roundTripped, tt.payload)
			}

			// Multi-line payloads must not introduce raw newlines into
			// the literal's string token.
			if strings.Contains(quoted, "\n") {
				t.Errorf("escaped string contains a raw newline")
			}
		})
	}
}

func TestRender_SearchPaths(t *testing.T) {
	t.Run("empty renders absent", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SysPaths = nil

		got := Render(cfg)
		if !strings.Contains(got, "ModuleSearchPaths: embedded.None[[]string]()") {
			t.Errorf("empty search paths should render the absent marker")
		}
	})

	t.Run("non-empty renders ordered sequence", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SysPaths = []string{"$ORIGIN/lib", "vendor"}

		got := Render(cfg)
		want := `ModuleSearchPaths: embedded.Some([]string{"$ORIGIN/lib", "vendor"})`
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in rendered literal:\n%s", want, got)
		}
	})
}

func TestRender_OptionalStdioFields(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		got := Render(baseConfig())
		if !strings.Contains(got, "StdioEncoding: embedded.None[string]()") {
			t.Errorf("unset stdio encoding should render the absent marker")
		}
	})

	t.Run("present", func(t *testing.T) {
		cfg := baseConfig()
		enc := "utf-8"
		errs := "strict"
		cfg.StdioEncodingName = &enc
		cfg.StdioEncodingErrors = &errs

		got := Render(cfg)
		if !strings.Contains(got, `StdioEncoding: embedded.Some("utf-8")`) {
			t.Errorf("expected present stdio encoding")
		}
		if !strings.Contains(got, `StdioErrors: embedded.Some("strict")`) {
			t.Errorf("expected present stdio errors")
		}
	})
}

func TestRender_VerbosePresence(t *testing.T) {
	tests := []struct {
		verbose int
		want    string
	}{
		{0, "Verbose: embedded.Some(false)"},
		{1, "Verbose: embedded.Some(true)"},
		{7, "Verbose: embedded.Some(true)"},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.Verbose = tt.verbose
		if got := Render(cfg); !strings.Contains(got, tt.want) {
			t.Errorf("verbose=%d: expected %q", tt.verbose, tt.want)
		}
	}
}

func TestRender_BooleanInversions(t *testing.T) {
	cfg := baseConfig()
	cfg.IgnoreEnvironment = true
	cfg.UnbufferedStdio = true

	got := Render(cfg)
	if !strings.Contains(got, "UseEnvironment: embedded.Some(false)") {
		t.Errorf("ignore_environment=true should render UseEnvironment false")
	}
	if !strings.Contains(got, "BufferedStdio: embedded.Some(false)") {
		t.Errorf("unbuffered_stdio=true should render BufferedStdio false")
	}
}

func TestRender_Terminfo(t *testing.T) {
	tests := []struct {
		name     string
		terminfo Terminfo
		want     string
	}{
		{"dynamic", Terminfo{Mode: TerminfoDynamic}, "TerminfoResolution: embedded.TerminfoDynamic()"},
		{"none", Terminfo{Mode: TerminfoNone}, "TerminfoResolution: embedded.TerminfoNone()"},
		{"static", Terminfo{Mode: TerminfoStatic, Path: "/usr/share/terminfo"}, `TerminfoResolution: embedded.TerminfoStatic("/usr/share/terminfo")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Terminfo = tt.terminfo
			if got := Render(cfg); !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in rendered literal", tt.want)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.SysPaths = []string{"a", "b", "c"}
	cfg.Run = RunModeModule("app")

	first := Render(cfg)
	second := Render(cfg)
	if first != second {
		t.Errorf("rendering is not deterministic")
	}
}

func TestRender_EndToEnd(t *testing.T) {
	cfg := baseConfig()
	cfg.Isolated = true
	cfg.OptimizeLevel = 5
	cfg.SysPaths = nil
	cfg.Run = RunModeFile("/app/main.dat")

	got := Render(cfg)

	checks := []string{
		"Profile: embedded.ProfileIsolated",
		"OptimizationLevel: embedded.Some(embedded.OptimizationTwo)",
		"ModuleSearchPaths: embedded.None[[]string]()",
		`Run: embedded.RunFile("/app/main.dat")`,
	}
	for _, want := range checks {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in rendered literal:\n%s", want, got)
		}
	}
	if n := countRunModeMarkers(got); n != 1 {
		t.Errorf("expected exactly one run mode marker, found %d", n)
	}
}
