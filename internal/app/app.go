package app

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/expr"
)

// Options are per-command settings supplied by code rather than the schema.
type Options struct {
	// When replaces the schema's when expression.
	When command.Predicate

	// CaptureInput lets the command fire inside text fields even when the
	// schema entry does not.
	CaptureInput bool
}

// Handlers maps command IDs to implementations.
type Handlers map[string]command.Handler

// IDs returns the handler IDs in sorted order.
func (h Handlers) IDs() []string {
	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var defaultCompiler = sync.OnceValues(expr.NewCompiler)

// FromBindings builds one command per handler with a matching binding, in
// sorted ID order. Handlers without a binding are logged and skipped, as
// are commands whose when expression does not compile.
func FromBindings(bindings config.Bindings, handlers Handlers, options map[string]Options, log logr.Logger) []*command.Command {
	compiler, err := defaultCompiler()
	if err != nil {
		log.Error(err, "when expressions disabled")
	}
	cmds, _ := build(bindings, handlers, options, compiler, log, false)
	return cmds
}

// BuildCommands is FromBindings with an explicit compiler that fails on
// the first when expression that does not compile. A nil compiler uses a
// shared default.
func BuildCommands(bindings config.Bindings, handlers Handlers, options map[string]Options, compiler *expr.Compiler, log logr.Logger) ([]*command.Command, error) {
	if compiler == nil {
		var err error
		if compiler, err = defaultCompiler(); err != nil {
			return nil, err
		}
	}
	return build(bindings, handlers, options, compiler, log, true)
}

func build(bindings config.Bindings, handlers Handlers, options map[string]Options, compiler *expr.Compiler, log logr.Logger, strict bool) ([]*command.Command, error) {
	cmds := make([]*command.Command, 0, len(handlers))
	for _, id := range handlers.IDs() {
		entry, ok := bindings[id]
		if !ok {
			log.Info("handler has no matching binding", "id", id, "condition", "MissingHandler")
			continue
		}

		cmd := &command.Command{
			ID:           id,
			Label:        entry.Label,
			Category:     entry.Category,
			Keys:         entry.Keys,
			Mouse:        entry.Mouse,
			Hidden:       entry.Hidden,
			CaptureInput: entry.CaptureInput,
			Execute:      handlers[id],
		}

		opt := options[id]
		if opt.CaptureInput {
			cmd.CaptureInput = true
		}

		switch {
		case opt.When != nil:
			cmd.When = opt.When
		case entry.When != "":
			if compiler == nil {
				log.Info("skipping command with when expression", "id", id)
				continue
			}
			pred, err := compiler.Compile(entry.When)
			if err != nil {
				if strict {
					return nil, fmt.Errorf("command %q: %w", id, err)
				}
				log.Error(err, "skipping command with invalid when expression", "id", id)
				continue
			}
			cmd.When = pred
		}

		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
