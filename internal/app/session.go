package app

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/config/notify"
	"github.com/dshills/keybinds/internal/dispatcher"
	"github.com/dshills/keybinds/internal/expr"
)

// SessionConfig configures NewSession.
type SessionConfig struct {
	Store    *config.Store
	Handlers Handlers
	Options  map[string]Options
	Context  command.ContextFunc

	// Compiler compiles schema when expressions. Nil uses a shared default.
	Compiler *expr.Compiler

	Logger logr.Logger

	// DispatcherOptions are passed to dispatcher.New after the logger.
	DispatcherOptions []dispatcher.Option
}

// Watcher reports changes to persisted overrides, as kv.File does.
type Watcher interface {
	Watch(ctx context.Context, fn func()) error
}

// Session keeps a dispatcher's commands in step with a store.
type Session struct {
	store    *config.Store
	handlers Handlers
	options  map[string]Options
	compiler *expr.Compiler
	log      logr.Logger

	disp *dispatcher.Dispatcher
	sub  *notify.Subscription

	mu      sync.Mutex
	detach  []func()
	cancels []context.CancelFunc
	closed  bool
}

// NewSession builds the initial commands, creates the dispatcher and
// subscribes to store changes.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Store == nil {
		return nil, ErrNoStore
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	s := &Session{
		store:    cfg.Store,
		handlers: cfg.Handlers,
		options:  cfg.Options,
		compiler: cfg.Compiler,
		log:      log,
	}

	cmds, err := s.build(cfg.Store.Get())
	if err != nil {
		return nil, err
	}

	opts := append([]dispatcher.Option{dispatcher.WithLogger(log)}, cfg.DispatcherOptions...)
	disp, err := dispatcher.New(cmds, cfg.Context, opts...)
	if err != nil {
		return nil, err
	}
	s.disp = disp
	s.sub = cfg.Store.Subscribe(s.onChange)
	return s, nil
}

func (s *Session) build(bindings config.Bindings) ([]*command.Command, error) {
	return BuildCommands(bindings, s.handlers, s.options, s.compiler, s.log)
}

// onChange rebuilds commands from the new bindings. Invalid bindings are
// logged and the previous tables stay in place.
func (s *Session) onChange(change config.Change) {
	cmds, err := s.build(change.Bindings)
	if err != nil {
		s.log.Error(err, "keeping previous bindings")
		return
	}
	if err := s.disp.SetCommands(cmds); err != nil {
		s.log.Error(err, "keeping previous bindings")
		return
	}
	s.log.V(1).Info("bindings updated", "commands", len(cmds))
}

// Dispatcher returns the session's dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher {
	return s.disp
}

// Store returns the session's store.
func (s *Session) Store() *config.Store {
	return s.store
}

// Commands returns the current commands.
func (s *Session) Commands() []*command.Command {
	return s.disp.Commands()
}

// ExecuteByID runs a command by ID, as a palette selection does.
func (s *Session) ExecuteByID(id string) (command.Result, bool) {
	return s.disp.ExecuteByID(id)
}

// Attach connects the dispatcher to src until the session closes.
func (s *Session) Attach(src dispatcher.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.detach = append(s.detach, s.disp.Attach(src))
	return nil
}

// Watch reloads the store whenever w reports a change, until the session
// closes.
func (s *Session) Watch(w Watcher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	ctx, cancel := context.WithCancel(context.Background())
	err := w.Watch(ctx, func() {
		if err := s.store.Reload(); err != nil {
			s.log.Error(err, "reloading bindings")
		}
	})
	if err != nil {
		cancel()
		return err
	}
	s.cancels = append(s.cancels, cancel)
	return nil
}

// Close unsubscribes from the store, stops watchers and detaches sources.
// It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	detach, cancels := s.detach, s.cancels
	s.detach, s.cancels = nil, nil
	s.mu.Unlock()

	s.sub.Unsubscribe()
	for _, cancel := range cancels {
		cancel()
	}
	for _, fn := range detach {
		fn()
	}
}
