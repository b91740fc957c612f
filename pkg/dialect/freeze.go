package dialect

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Owner is implemented by dialect container values. OwnedValues
// enumerates every value reachable from the receiver so a freeze can be
// verified recursively before it is committed.
type Owner interface {
	OwnedValues() []starlark.Value
}

// FreezeBlocker is implemented by values that may temporarily hold a
// handle to an external mutable resource they cannot carry into the
// frozen state. A non-nil return refuses the freeze.
type FreezeBlocker interface {
	FreezeBlocked() error
}

// FreezeValue transitions v and everything reachable from it to the
// immutable state. If any reachable value refuses to freeze, the whole
// transition fails and nothing is frozen, so the caller can surface the
// dangling mutable reference instead of sharing a half-frozen graph.
func FreezeValue(v starlark.Value) error {
	if err := checkFreezable(v, make(map[starlark.Value]bool)); err != nil {
		return err
	}
	v.Freeze()
	return nil
}

func checkFreezable(v starlark.Value, seen map[starlark.Value]bool) error {
	if seen[v] {
		return nil
	}
	seen[v] = true

	if blocker, ok := v.(FreezeBlocker); ok {
		if err := blocker.FreezeBlocked(); err != nil {
			return fmt.Errorf("cannot freeze %s: %w", v.Type(), err)
		}
	}

	if owner, ok := v.(Owner); ok {
		for _, owned := range owner.OwnedValues() {
			if err := checkFreezable(owned, seen); err != nil {
				return err
			}
		}
	}

	return nil
}
