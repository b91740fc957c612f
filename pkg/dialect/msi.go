package dialect

import (
	"go.starlark.net/starlark"
)

// BackendMSI is the backend name the MSI installer builder hands off to.
const BackendMSI = "msi"

func registerMSI(predeclared starlark.StringDict) {
	predeclared["msi_builder"] = starlark.NewBuiltin("msi_builder", newMSIBuilder)
}

func newMSIBuilder(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, version, manufacturer string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name, "version", &version, "manufacturer", &manufacturer); err != nil {
		return nil, err
	}

	bb := newBundleBuilder("MSIBuilder", BackendMSI, name)
	bb.meta["version"] = version
	bb.meta["manufacturer"] = manufacturer
	return bb, nil
}
