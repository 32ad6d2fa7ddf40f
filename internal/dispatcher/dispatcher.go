package dispatcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/keymap"
)

// Dispatcher routes key and mouse presses to commands.
type Dispatcher struct {
	mu sync.RWMutex

	cmds   []*command.Command
	tables *keymap.Tables

	context   command.ContextFunc
	parser    key.Parser
	log       logr.Logger
	onExecute func(*command.Command, command.Context)
	metrics   *Metrics
}

// New creates a dispatcher for cmds. ctxFn supplies the activation
// context at dispatch time and may be nil. It fails when any binding is
// invalid.
func New(cmds []*command.Command, ctxFn command.ContextFunc, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		context: ctxFn,
		parser:  key.DefaultParser(),
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.SetCommands(cmds); err != nil {
		return nil, err
	}
	return d, nil
}

// SetCommands rebuilds the lookup tables for cmds. On error the previous
// tables stay in effect.
func (d *Dispatcher) SetCommands(cmds []*command.Command) error {
	tables, err := keymap.BuildWithParser(d.parser, cmds)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBindings, err)
	}

	d.mu.Lock()
	d.cmds = cmds
	d.tables = tables
	d.mu.Unlock()

	d.log.V(1).Info("lookup tables rebuilt", "commands", len(cmds), "triggers", len(tables.Keys)+len(tables.Mouse))
	return nil
}

// Commands returns the command list the tables were built from.
func (d *Dispatcher) Commands() []*command.Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cmds
}

// Tables returns the current lookup tables.
func (d *Dispatcher) Tables() *keymap.Tables {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tables
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Platform returns the platform "$mod" resolves for.
func (d *Dispatcher) Platform() key.Platform {
	return d.parser.Platform
}

// DispatchKey runs the first active candidate that handles ev and reports
// whether the event was consumed. Releases are ignored.
func (d *Dispatcher) DispatchKey(ev *KeyEvent) bool {
	if ev == nil || ev.Up {
		return false
	}

	cands := d.Tables().KeyCandidates(ev.Lookups())
	if len(cands) == 0 {
		return false
	}
	return d.run(cands, ev, ev.InInput, ev.String())
}

// DispatchMouse runs the first active candidate that handles ev and
// reports whether the event was consumed.
func (d *Dispatcher) DispatchMouse(ev *MouseEvent) bool {
	if ev == nil {
		return false
	}

	cands := d.Tables().MouseCandidates(ev.Lookup())
	if len(cands) == 0 {
		return false
	}
	return d.run(cands, ev, false, ev.Lookup())
}

// ExecuteByID runs the active command registered under id with a nil
// event, for palettes and menus.
func (d *Dispatcher) ExecuteByID(id string) (command.Result, bool) {
	cmds := d.Commands()
	ctx := d.context.Snapshot()
	cmd := command.Find(cmds, id)
	res, ok := command.ExecuteByID(cmds, id, ctx)
	if ok && res == command.Handled && d.onExecute != nil {
		d.onExecute(cmd, ctx)
	}
	return res, ok
}

// run walks the candidates. The tables were read under the lock and are
// immutable, so handlers are free to call SetCommands.
func (d *Dispatcher) run(cands []*command.Command, ev command.Event, inInput bool, trigger string) bool {
	start := time.Now()
	ctx := d.context.Snapshot()

	handled := false
	for _, cmd := range cands {
		if inInput && !cmd.CaptureInput {
			d.record(cmd.ID, OutcomeInInput, 0)
			continue
		}
		if !command.IsActive(cmd, ctx) {
			d.record(cmd.ID, OutcomeInactive, 0)
			continue
		}
		if cmd.Execute == nil {
			continue
		}

		runStart := time.Now()
		res := cmd.Execute(ctx, ev)
		if res != command.Handled {
			d.record(cmd.ID, OutcomeNotHandled, time.Since(runStart))
			d.log.V(1).Info("command declined", "trigger", trigger, "command", cmd.ID)
			continue
		}

		ev.PreventDefault()
		ev.StopPropagation()
		d.record(cmd.ID, OutcomeHandled, time.Since(runStart))
		d.log.V(1).Info("command executed", "trigger", trigger, "command", cmd.ID)
		if d.onExecute != nil {
			d.onExecute(cmd, ctx)
		}
		handled = true
		break
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(time.Since(start), handled)
	}
	return handled
}

func (d *Dispatcher) record(id string, outcome Outcome, duration time.Duration) {
	if d.metrics != nil {
		d.metrics.RecordCandidate(id, outcome, duration)
	}
}

// Attach subscribes d to src's key and mouse events. The returned function
// removes exactly those listeners and is safe to call more than once.
func (d *Dispatcher) Attach(src Source) (detach func()) {
	if src == nil {
		d.log.Error(ErrNilSource, "attach skipped")
		return func() {}
	}

	removeKey := src.AddKeyListener(func(ev *KeyEvent) { d.DispatchKey(ev) })
	removeMouse := src.AddMouseListener(func(ev *MouseEvent) { d.DispatchMouse(ev) })

	var once sync.Once
	return func() {
		once.Do(func() {
			removeKey()
			removeMouse()
		})
	}
}
