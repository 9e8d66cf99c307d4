// Package script evaluates operator-supplied expressions against the
// triggering event and a project item. Expressions are compiled with
// expr-lang/expr into a closed environment: exactly two names are
// bound, `context` and `item`, and referencing anything else is a
// compile error rather than a silent nil.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/danho/pvfield/internal/domain"
)

// ErrEvaluation wraps any compile or runtime failure of a user script,
// including an exceeded deadline.
var ErrEvaluation = errors.New("script evaluation failed")

// DefaultTimeout bounds a single script run. The expression language
// cannot loop unboundedly, but builtins over large inputs still get a
// hard stop at the embedding boundary.
const DefaultTimeout = 10 * time.Second

// Evaluator compiles and runs user scripts. The zero value is not
// usable; construct with New.
type Evaluator struct {
	timeout time.Duration
}

// New returns an Evaluator with the given per-run timeout. A
// non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Evaluator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Evaluator{timeout: timeout}
}

// Evaluate runs source with `context` bound to the trigger context and
// `item` bound to the projected item, and returns the expression's
// result. The caller's ctx cancels the run; independently, the
// evaluator's own timeout applies.
func (e *Evaluator) Evaluate(ctx context.Context, triggerContext map[string]any, item domain.Item, source string) (any, error) {
	env := map[string]any{
		"context": triggerContext,
		"item": map[string]any{
			"id":          item.ID,
			"type":        item.Type,
			"fieldValues": item.FieldValues,
		},
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		value any
		err   error
	}

	done := make(chan result, 1)
	go func() {
		value, err := runProgram(program, env)
		done <- result{value: value, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEvaluation, res.err)
		}
		return res.value, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, ctx.Err())
	}
}

// runProgram isolates the vm run so a panicking builtin surfaces as an
// error instead of killing the process.
func runProgram(program *vm.Program, env map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return expr.Run(program, env)
}

// Truthy reports whether a script result counts as true for the skip
// decision, following the loose-boolean semantics of the reference
// scripts: nil, false, zero numbers, and empty strings are false,
// everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
