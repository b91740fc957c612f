package dialect

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestEvaluator_Eval(t *testing.T) {
	tests := []struct {
		name      string
		script    string
		backends  []Backend
		checkFunc func(*testing.T, *Context)
		wantErr   string
	}{
		{
			name: "signer registration",
			script: `
signer = code_signer(name = "release", key_path = "release.key", cert_path = "release.crt")
signer.set_timestamp_server("http://timestamp.example.com")
signer.activate()
`,
			checkFunc: func(t *testing.T, ctx *Context) {
				signers := ctx.Signers()
				if len(signers) != 1 {
					t.Fatalf("expected 1 signer, got %d", len(signers))
				}
				signer, ok := signers[0].(*Signer)
				if !ok {
					t.Fatalf("unexpected signer value type %T", signers[0])
				}
				if signer.Name() != "release" {
					t.Errorf("signer name = %q", signer.Name())
				}
				if signer.ID() == "" {
					t.Errorf("signer should carry an opaque handle id")
				}
				if signer.timestampServer != "http://timestamp.example.com" {
					t.Errorf("timestamp server not applied: %q", signer.timestampServer)
				}
			},
		},
		{
			name: "context frozen after evaluation",
			script: `
code_signer(name = "a", key_path = "a.key", cert_path = "a.crt").activate()
`,
			checkFunc: func(t *testing.T, ctx *Context) {
				if !ctx.Frozen() {
					t.Errorf("context should be frozen when evaluation completes")
				}
				if err := ctx.AddSigner(&Signer{id: "late"}); err == nil {
					t.Errorf("mutating a frozen context must fail")
				}
			},
		},
		{
			name: "open token session blocks freeze",
			script: `
signer = code_signer(name = "hw", key_path = "hw.key", cert_path = "hw.crt")
signer.activate()
signer.open_token_session()
`,
			wantErr: "left mutable state behind",
		},
		{
			name: "closed token session freezes cleanly",
			script: `
signer = code_signer(name = "hw", key_path = "hw.key", cert_path = "hw.crt")
signer.activate()
signer.open_token_session()
signer.close_token_session()
`,
			checkFunc: func(t *testing.T, ctx *Context) {
				if !ctx.Frozen() {
					t.Errorf("context should be frozen")
				}
			},
		},
		{
			name: "bundle build without backend",
			script: `
builder = snap_builder(name = "app")
builder.build(out_dir = "/tmp/out")
`,
			wantErr: `packaging backend "snap" is not configured`,
		},
		{
			name: "bundle build hands state to backend",
			script: `
manifest = file_manifest()
manifest.add_file(dest = "bin/app", src = "./dist/app")
builder = msi_builder(name = "app", version = "1.2.0", manufacturer = "Example Corp")
builder.add_manifest(manifest)
artifact = builder.build(out_dir = "/tmp/out")
`,
			backends: []Backend{&fakeBackend{name: BackendMSI}},
			checkFunc: func(t *testing.T, ctx *Context) {
				backend, _ := ctx.BackendFor(BackendMSI)
				fake := backend.(*fakeBackend)
				if len(fake.builds) != 1 {
					t.Fatalf("expected 1 backend build, got %d", len(fake.builds))
				}
				spec := fake.builds[0]
				if spec.Name != "app" {
					t.Errorf("spec name = %q", spec.Name)
				}
				if spec.Files["bin/app"] != "./dist/app" {
					t.Errorf("manifest files not handed to backend: %v", spec.Files)
				}
				if spec.Meta["version"] != "1.2.0" || spec.Meta["manufacturer"] != "Example Corp" {
					t.Errorf("builder meta not handed to backend: %v", spec.Meta)
				}
			},
		},
		{
			name: "macos builder default meta",
			script: `
builder = macos_application_bundle_builder(name = "MyApp")
builder.set_meta(key = "bundle_identifier", value = "com.corp.myapp")
builder.build(out_dir = "/tmp/out")
`,
			backends: []Backend{&fakeBackend{name: BackendMacOSBundle}},
			checkFunc: func(t *testing.T, ctx *Context) {
				backend, _ := ctx.BackendFor(BackendMacOSBundle)
				fake := backend.(*fakeBackend)
				if len(fake.builds) != 1 {
					t.Fatalf("expected 1 backend build, got %d", len(fake.builds))
				}
				if got := fake.builds[0].Meta["bundle_identifier"]; got != "com.corp.myapp" {
					t.Errorf("bundle identifier = %q", got)
				}
			},
		},
		{
			name:    "syntax error surfaces",
			script:  `this is not starlark`,
			wantErr: "packaging script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluator(zerolog.Nop(), tt.backends...)
			ctx, err := evaluator.EvalSource("test.star", tt.script)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EvalSource() error: %v", err)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, ctx)
			}
		})
	}
}

func TestEvaluator_FreshContextPerEvaluation(t *testing.T) {
	evaluator := NewEvaluator(zerolog.Nop())
	script := `
code_signer(name = "a", key_path = "a.key", cert_path = "a.crt").activate()
`

	first, err := evaluator.EvalSource("first.star", script)
	if err != nil {
		t.Fatal(err)
	}
	second, err := evaluator.EvalSource("second.star", script)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Errorf("each evaluation must get its own context")
	}
	if len(first.Signers()) != 1 || len(second.Signers()) != 1 {
		t.Errorf("signer state leaked across evaluations")
	}
}
