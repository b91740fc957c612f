package dialect

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.starlark.net/starlark"
)

// FileManifest maps install destinations to source files for the
// packaging backends. Scripts build manifests with file_manifest() and
// attach them to bundle builders.
type FileManifest struct {
	files  map[string]string
	frozen bool
}

func registerFileResources(predeclared starlark.StringDict) {
	predeclared["file_manifest"] = starlark.NewBuiltin("file_manifest", newFileManifest)
	predeclared["glob"] = starlark.NewBuiltin("glob", globFiles)
}

func newFileManifest(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return &FileManifest{files: make(map[string]string)}, nil
}

// globFiles expands a filesystem glob pattern into a list of matching
// paths. This is the one extension function that touches the filesystem
// during evaluation; the matches are plain strings, not resource handles.
func globFiles(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	elems := make([]starlark.Value, len(matches))
	for i, m := range matches {
		elems[i] = starlark.String(m)
	}
	return starlark.NewList(elems), nil
}

// Files returns a copy of the destination-to-source mapping.
func (m *FileManifest) Files() map[string]string {
	out := make(map[string]string, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

// String implements starlark.Value.
func (m *FileManifest) String() string {
	return fmt.Sprintf("<file_manifest files=%d>", len(m.files))
}

// Type implements starlark.Value.
func (m *FileManifest) Type() string {
	return "FileManifest"
}

// Freeze implements starlark.Value.
func (m *FileManifest) Freeze() {
	m.frozen = true
}

// Truth implements starlark.Value.
func (m *FileManifest) Truth() starlark.Bool {
	return starlark.Bool(len(m.files) > 0)
}

// Hash implements starlark.Value.
func (m *FileManifest) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", m.Type())
}

// Attr implements starlark.HasAttrs.
func (m *FileManifest) Attr(name string) (starlark.Value, error) {
	switch name {
	case "add_file":
		return starlark.NewBuiltin("add_file", m.addFile), nil
	case "destinations":
		dests := make([]string, 0, len(m.files))
		for d := range m.files {
			dests = append(dests, d)
		}
		sort.Strings(dests)
		elems := make([]starlark.Value, len(dests))
		for i, d := range dests {
			elems[i] = starlark.String(d)
		}
		return starlark.NewList(elems), nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (m *FileManifest) AttrNames() []string {
	return []string{"add_file", "destinations"}
}

func (m *FileManifest) addFile(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dest, src string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "dest", &dest, "src", &src); err != nil {
		return nil, err
	}

	if m.frozen {
		return nil, fmt.Errorf("cannot add file to manifest: %w", ErrFrozen)
	}
	m.files[dest] = src

	return starlark.None, nil
}
