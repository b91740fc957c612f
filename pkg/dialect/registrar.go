package dialect

import (
	"go.starlark.net/starlark"
)

// RegisterDialect installs the packaging dialect's extension modules into
// a predeclared environment: code signing, static file resources, and one
// module per supported packaging backend. The set is fixed and the
// modules are independent, so registration order does not matter.
// Registering into the same environment twice is not a supported path.
func RegisterDialect(predeclared starlark.StringDict) {
	registerCodeSigning(predeclared)
	registerFileResources(predeclared)
	registerMacOSBundle(predeclared)
	registerSnap(predeclared)
	registerMSI(predeclared)
}
