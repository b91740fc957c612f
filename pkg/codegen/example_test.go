package codegen_test

import (
	"fmt"
	"strings"

	"github.com/oxbow-build/oxbow/pkg/codegen"
)

// ExampleRender demonstrates rendering an embedding configuration model
// into the config literal source text.
func ExampleRender() {
	cfg := &codegen.EmbeddedConfig{
		Isolated:   true,
		SiteImport: false,
		Run:        codegen.RunModeModule("myapp.main"),
	}

	literal := codegen.Render(cfg)

	lines := strings.Split(literal, "\n")
	fmt.Println(lines[0])
	fmt.Println(strings.TrimSpace(lines[1]))
	// Output:
	// embedded.Config{
	// Interpreter: embedded.InterpreterConfig{
}

// ExampleConfigSource demonstrates wrapping a rendered literal into the
// complete generated source file.
func ExampleConfigSource() {
	cfg := &codegen.EmbeddedConfig{Run: codegen.RunModeNone()}

	src := codegen.ConfigSource("packed-resources.bin", codegen.Render(cfg))

	fmt.Println(strings.Split(src, "\n")[0])
	fmt.Println(strings.Contains(src, "//go:embed packed-resources.bin"))
	// Output:
	// // Code generated by oxbow. DO NOT EDIT.
	// true
}
