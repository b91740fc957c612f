package dialect

import (
	"go.starlark.net/starlark"
)

// BackendSnap is the backend name the snap package builder hands off to.
const BackendSnap = "snap"

func registerSnap(predeclared starlark.StringDict) {
	predeclared["snap_builder"] = starlark.NewBuiltin("snap_builder", newSnapBuilder)
}

func newSnapBuilder(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	grade := "stable"
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "grade?", &grade); err != nil {
		return nil, err
	}

	bb := newBundleBuilder("SnapBuilder", BackendSnap, name)
	bb.meta["grade"] = grade
	return bb, nil
}
