package dispatcher

import (
	"github.com/go-logr/logr"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/key"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Dispatch decisions are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithOnExecute registers a callback invoked after a command handles an
// event, typically for telemetry.
func WithOnExecute(fn func(cmd *command.Command, ctx command.Context)) Option {
	return func(d *Dispatcher) {
		d.onExecute = fn
	}
}

// WithParser fixes the platform used to resolve "$mod". The default is
// the current platform.
func WithParser(p key.Parser) Option {
	return func(d *Dispatcher) {
		d.parser = p
	}
}

// WithMetrics enables per-command dispatch statistics.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.metrics = NewMetrics()
	}
}
