// Package expr compiles CEL boolean expressions into command predicates.
//
// Expressions see the host context as the map variable ctx:
//
//	!ctx.inputFocused && ctx.selection > 0
//	has(ctx.mode) && ctx.mode == "edit"
//
// A predicate whose evaluation fails (for example a missing key) or yields
// a non-bool value reports false.
package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/dshills/keybinds/internal/command"
)

// ErrNotBool is returned when an expression's type cannot be boolean.
var ErrNotBool = errors.New("expression does not evaluate to bool")

// Compiler compiles expressions against a shared CEL environment.
type Compiler struct {
	env   *cel.Env
	mu    sync.Mutex
	cache map[string]cel.Program
}

// NewCompiler creates a compiler with the strings and math extensions.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("ctx", cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Compiler{env: env, cache: make(map[string]cel.Program)}, nil
}

// Compile parses and type-checks source and returns a predicate over the
// command context. Identical sources share one program.
func (c *Compiler) Compile(source string) (command.Predicate, error) {
	prg, err := c.program(source)
	if err != nil {
		return nil, err
	}

	return func(ctx command.Context) bool {
		if ctx == nil {
			ctx = command.Context{}
		}
		out, _, err := prg.Eval(map[string]any{"ctx": map[string]any(ctx)})
		if err != nil {
			return false
		}
		b, ok := out.(types.Bool)
		return ok && bool(b)
	}, nil
}

func (c *Compiler) program(source string) (cel.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prg, ok := c.cache[source]; ok {
		return prg, nil
	}

	ast, issues := c.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	switch ast.OutputType().Kind() {
	case types.BoolKind, types.DynKind:
	default:
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBool, source, ast.OutputType())
	}

	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	c.cache[source] = prg
	return prg, nil
}

// Eval compiles and evaluates source once against ctx.
func (c *Compiler) Eval(source string, ctx command.Context) (bool, error) {
	pred, err := c.Compile(source)
	if err != nil {
		return false, err
	}
	return pred(ctx), nil
}
