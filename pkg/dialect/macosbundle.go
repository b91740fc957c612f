package dialect

import (
	"go.starlark.net/starlark"
)

// BackendMacOSBundle is the backend name the macOS application bundle
// builder hands off to.
const BackendMacOSBundle = "macos_bundle"

func registerMacOSBundle(predeclared starlark.StringDict) {
	predeclared["macos_application_bundle_builder"] = starlark.NewBuiltin(
		"macos_application_bundle_builder", newMacOSBundleBuilder)
}

func newMacOSBundleBuilder(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}

	bb := newBundleBuilder("MacOSApplicationBundleBuilder", BackendMacOSBundle, name)
	bb.meta["bundle_identifier"] = "com.example." + name
	return bb, nil
}
