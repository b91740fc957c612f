package dialect

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Evaluator runs packaging scripts to completion, one fresh context and
// thread per evaluation. Evaluation is single-threaded and synchronous
// with no suspension points; there is no timeout at this layer, so a
// caller wanting bounded execution time wraps the call externally.
type Evaluator struct {
	logger   zerolog.Logger
	backends []Backend
}

// NewEvaluator returns an evaluator that logs to logger and configures
// each evaluation's context with the given packaging backends.
func NewEvaluator(logger zerolog.Logger, backends ...Backend) *Evaluator {
	return &Evaluator{logger: logger, backends: backends}
}

// EvalFile evaluates the packaging script at path and returns its frozen
// context.
func (e *Evaluator) EvalFile(path string) (*Context, error) {
	return e.eval(path, nil)
}

// EvalSource evaluates src under the given script name.
func (e *Evaluator) EvalSource(name, src string) (*Context, error) {
	return e.eval(name, src)
}

func (e *Evaluator) eval(filename string, src interface{}) (*Context, error) {
	ctx := NewContext(e.logger)
	for _, b := range e.backends {
		if err := ctx.RegisterBackend(b); err != nil {
			return nil, err
		}
	}

	thread := &starlark.Thread{
		Name: "oxbow:" + filename,
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.Info().Str("script", filename).Msg(msg)
		},
	}
	if err := Bind(thread, ctx); err != nil {
		return nil, err
	}

	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
	RegisterDialect(predeclared)

	globals, err := starlark.ExecFile(thread, filename, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("packaging script %s failed: %w", filename, err)
	}

	// The evaluation is complete; verify nothing reachable from the
	// context still holds external mutable state, then commit the freeze
	// so the context can be shared across evaluations without locking.
	if err := FreezeValue(ctx); err != nil {
		return nil, fmt.Errorf("script %s left mutable state behind: %w", filename, err)
	}
	globals.Freeze()

	return ctx, nil
}
