package codegen

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// packedResourcesIdent is the package-level variable the generated file
// declares for the embedded resources blob. Render references it from the
// config literal.
const packedResourcesIdent = "packedResources"

// ConfigSource assembles the complete generated source file: a generated
// header, the go:embed directive for the packed resources blob, and one
// documented public declaration wrapping the indented config literal.
//
// The blob path lands in the go:embed directive exactly as given; the Go
// toolchain resolves it relative to the generated file at its own build
// time, which is why the emitter and the resource packer must agree on it.
func ConfigSource(resourcesPath, configLiteral string) string {
	var b strings.Builder

	b.WriteString("// Code generated by oxbow. DO NOT EDIT.\n\n")
	b.WriteString("package main\n\n")
	b.WriteString("import (\n")
	b.WriteString("\t_ \"embed\"\n\n")
	b.WriteString("\t\"github.com/oxbow-build/oxbow/pkg/embedded\"\n")
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "//go:embed %s\n", embedPattern(resourcesPath))
	fmt.Fprintf(&b, "var %s []byte\n\n", packedResourcesIdent)

	b.WriteString("// DefaultInterpreterConfig returns the interpreter configuration baked\n")
	b.WriteString("// into this executable.\n")
	b.WriteString("//\n")
	b.WriteString("// The packaging pipeline generated this file together with the packed\n")
	b.WriteString("// resources blob it references; both are fixed when this binary is\n")
	b.WriteString("// compiled. Callers only need this function, not the literal's shape.\n")
	b.WriteString("func DefaultInterpreterConfig() embedded.Config {\n")

	// Indent the body line by line so the declaration stays well-formed
	// no matter how the literal is shaped internally.
	for i, line := range strings.Split(configLiteral, "\n") {
		switch {
		case i == 0:
			b.WriteString("\treturn " + line + "\n")
		case line == "":
			b.WriteString("\n")
		default:
			b.WriteString("\t" + line + "\n")
		}
	}

	b.WriteString("}\n")

	return b.String()
}

// WriteDefaultConfigSource writes the generated config source to path,
// creating or truncating it. I/O failures propagate to the caller; the
// build step that invoked the emitter is re-run from scratch, so nothing
// is retried here.
func WriteDefaultConfigSource(path, resourcesPath, configLiteral string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config source %s: %w", path, err)
	}

	if _, err := f.WriteString(ConfigSource(resourcesPath, configLiteral)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config source %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config source %s: %w", path, err)
	}

	return nil
}

// embedPattern renders the resources path for the go:embed directive.
// The bare form preserves the path byte-for-byte; the quoted form is used
// only when the directive grammar would otherwise misread the path.
func embedPattern(path string) string {
	if strings.ContainsAny(path, " \t\"'`") {
		return strconv.Quote(path)
	}
	return path
}
