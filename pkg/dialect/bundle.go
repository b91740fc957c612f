package dialect

import (
	"fmt"

	"go.starlark.net/starlark"
)

// bundleBuilder is the shared core of the packaging backend builder
// values. Each backend module registers a constructor that produces one
// with its own type name, backend name, and default metadata.
type bundleBuilder struct {
	typeName    string
	backendName string

	name     string
	manifest *FileManifest
	meta     map[string]string
	frozen   bool
}

func newBundleBuilder(typeName, backendName, name string) *bundleBuilder {
	return &bundleBuilder{
		typeName:    typeName,
		backendName: backendName,
		name:        name,
		meta:        make(map[string]string),
	}
}

// String implements starlark.Value.
func (bb *bundleBuilder) String() string {
	return fmt.Sprintf("<%s %q>", bb.typeName, bb.name)
}

// Type implements starlark.Value.
func (bb *bundleBuilder) Type() string {
	return bb.typeName
}

// Freeze implements starlark.Value.
func (bb *bundleBuilder) Freeze() {
	if bb.frozen {
		return
	}
	bb.frozen = true
	if bb.manifest != nil {
		bb.manifest.Freeze()
	}
}

// Truth implements starlark.Value.
func (bb *bundleBuilder) Truth() starlark.Bool {
	return starlark.True
}

// Hash implements starlark.Value.
func (bb *bundleBuilder) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", bb.typeName)
}

// OwnedValues implements Owner: the attached manifest is reachable from
// the builder and must survive the freeze check with it.
func (bb *bundleBuilder) OwnedValues() []starlark.Value {
	if bb.manifest == nil {
		return nil
	}
	return []starlark.Value{bb.manifest}
}

// Attr implements starlark.HasAttrs.
func (bb *bundleBuilder) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(bb.name), nil
	case "add_manifest":
		return starlark.NewBuiltin("add_manifest", bb.addManifest), nil
	case "set_meta":
		return starlark.NewBuiltin("set_meta", bb.setMeta), nil
	case "build":
		return starlark.NewBuiltin("build", bb.build), nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (bb *bundleBuilder) AttrNames() []string {
	return []string{"add_manifest", "build", "name", "set_meta"}
}

func (bb *bundleBuilder) addManifest(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var manifest *FileManifest
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "manifest", &manifest); err != nil {
		return nil, err
	}

	if bb.frozen {
		return nil, fmt.Errorf("cannot attach manifest to %s %q: %w", bb.typeName, bb.name, ErrFrozen)
	}
	bb.manifest = manifest

	return starlark.None, nil
}

func (bb *bundleBuilder) setMeta(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key, value string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key, "value", &value); err != nil {
		return nil, err
	}

	if bb.frozen {
		return nil, fmt.Errorf("cannot set %q on %s %q: %w", key, bb.typeName, bb.name, ErrFrozen)
	}
	bb.meta[key] = value

	return starlark.None, nil
}

// build hands the accumulated state to the backend collaborator
// registered for this builder's backend name.
func (bb *bundleBuilder) build(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var outDir string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "out_dir", &outDir); err != nil {
		return nil, err
	}

	ctx, err := Resolve(thread)
	if err != nil {
		return nil, err
	}

	backend, ok := ctx.BackendFor(bb.backendName)
	if !ok {
		return nil, fmt.Errorf("packaging backend %q is not configured", bb.backendName)
	}

	spec := BundleSpec{
		Name: bb.name,
		Meta: bb.meta,
	}
	if bb.manifest != nil {
		spec.Files = bb.manifest.Files()
	}

	artifact, err := backend.Build(outDir, spec)
	if err != nil {
		return nil, fmt.Errorf("backend %q failed to build %q: %w", bb.backendName, bb.name, err)
	}

	logger := ctx.Logger()
	logger.Info().
		Str("backend", bb.backendName).
		Str("bundle", bb.name).
		Str("artifact", artifact).
		Msg("built bundle")

	return starlark.String(artifact), nil
}
