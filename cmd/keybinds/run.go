package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keybinds/internal/app"
	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config/kv"
	"github.com/dshills/keybinds/internal/dispatcher"
	"github.com/dshills/keybinds/internal/input/hold"
	"github.com/dshills/keybinds/internal/input/palette"
	"github.com/dshills/keybinds/internal/plugin/lua"
)

// holdKey reveals the cheatsheet while held. Terminals report no key
// releases, so any other key ends the hold.
const holdKey = "space"

// demo is the state behind the run command's screen.
type demo struct {
	mu        sync.Mutex
	dirty     bool
	selection int
	status    string
	sheet     bool
	held      bool
}

func (d *demo) context() command.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return command.Context{
		"dirty":     d.dirty,
		"selection": d.selection,
		"sheet":     d.sheet,
	}
}

func (d *demo) update(fn func(d *demo)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d)
}

// handlers returns a handler for every schema entry. A few IDs change the
// demo state; the rest only report that they ran.
func (d *demo) handlers(w *workspace, quit func()) app.Handlers {
	h := make(app.Handlers, len(w.schema))
	for id, entry := range w.schema {
		label := entry.Label
		h[id] = func(command.Context, command.Event) command.Result {
			d.update(func(d *demo) { d.status = "ran " + label })
			return command.Handled
		}
	}

	set := func(id string, fn func(d *demo)) {
		if _, ok := w.schema[id]; !ok {
			return
		}
		label := w.schema[id].Label
		h[id] = func(command.Context, command.Event) command.Result {
			d.update(func(d *demo) {
				fn(d)
				d.status = "ran " + label
			})
			return command.Handled
		}
	}
	set("cheatsheet.toggle", func(d *demo) { d.sheet = !d.sheet })
	set("file.open", func(d *demo) { d.dirty = true })
	set("file.save", func(d *demo) { d.dirty = false })
	set("selection.all", func(d *demo) { d.selection = 1 })
	set("selection.delete", func(d *demo) { d.selection = 0 })
	if _, ok := w.schema["app.quit"]; ok {
		h["app.quit"] = func(command.Context, command.Event) command.Result {
			quit()
			return command.Handled
		}
	}
	return h
}

func (c *cli) loadLuaHandlers(h app.Handlers) (*lua.State, error) {
	if c.cfg.Handlers == "" {
		return nil, nil
	}
	src, err := os.ReadFile(c.cfg.Handlers)
	if err != nil {
		return nil, err
	}
	state := lua.NewState(lua.WithLogger(c.log))
	scripted, err := state.LoadHandlers(string(src))
	if err != nil {
		state.Close()
		return nil, err
	}
	for id, fn := range scripted {
		h[id] = fn
	}
	c.log.V(1).Info("lua handlers loaded", "count", len(scripted))
	return state, nil
}

func (c *cli) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Try the bindings in an interactive terminal screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			ctx, quit := context.WithCancel(cmd.Context())
			defer quit()

			d := &demo{status: "press a binding; hold space for the cheatsheet"}
			handlers := d.handlers(w, quit)
			state, err := c.loadLuaHandlers(handlers)
			if err != nil {
				return err
			}
			if state != nil {
				defer state.Close()
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			screen.EnableMouse()

			history := palette.NewHistory(10)
			var session *app.Session
			redraw := func() { d.draw(screen, w, session, history) }

			session, err = app.NewSession(app.SessionConfig{
				Store:    w.store,
				Handlers: handlers,
				Context:  d.context,
				Logger:   c.log,
				DispatcherOptions: []dispatcher.Option{
					dispatcher.WithParser(w.parser),
					dispatcher.WithMetrics(),
					dispatcher.WithOnExecute(func(cmd *command.Command, _ command.Context) {
						history.Record(cmd.ID)
						redraw()
					}),
				},
			})
			if err != nil {
				return err
			}
			defer session.Close()

			if file, ok := w.kv.(*kv.File); ok {
				if err := session.Watch(file); err != nil {
					c.log.Error(err, "watching overrides", "path", file.Path())
				}
			}

			src := dispatcher.NewTcellSource(screen, nil)

			detector := hold.New([]string{holdKey}, c.cfg.HoldDelay, func(held bool) {
				d.update(func(d *demo) { d.held = held })
				_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
			})
			defer detector.Stop()
			defer detector.Attach(src)()
			removeBlur := src.AddKeyListener(func(ev *dispatcher.KeyEvent) {
				if !detector.Watches(ev.Key) {
					detector.Blur()
				}
			})
			defer removeBlur()

			// The dispatcher stops propagation of handled keys, so it listens
			// after the hold detector.
			if err := session.Attach(src); err != nil {
				return err
			}

			redraw()
			err = src.Run(ctx, func(ev tcell.Event) {
				switch e := ev.(type) {
				case *tcell.EventResize:
					screen.Sync()
				case *tcell.EventKey:
					if e.Key() == tcell.KeyCtrlC {
						quit()
						return
					}
				}
				redraw()
			})
			if errors.Is(err, context.Canceled) {
				err = nil
			}

			if m := session.Dispatcher().Metrics(); m != nil {
				c.log.Info("session finished",
					"dispatches", m.TotalDispatches(),
					"handled", m.TotalHandled(),
					"average", m.AverageDuration().String())
			}
			return err
		},
	}
}

func (d *demo) draw(screen tcell.Screen, w *workspace, session *app.Session, history *palette.History) {
	if session == nil {
		return
	}
	d.mu.Lock()
	status, sheet, held := d.status, d.sheet, d.held
	header := fmt.Sprintf("dirty=%t selection=%d", d.dirty, d.selection)
	d.mu.Unlock()

	screen.Clear()
	bold := tcell.StyleDefault.Bold(true)
	y := 0
	put := func(style tcell.Style, text string) {
		for x, r := range []rune(text) {
			screen.SetContent(x, y, r, nil, style)
		}
		y++
	}

	put(bold, "keybinds run  (ctrl+c to quit)")
	put(tcell.StyleDefault, header)
	put(tcell.StyleDefault, status)
	y++

	put(bold, "Recent")
	for _, cmd := range history.Commands(session.Commands(), 5) {
		put(tcell.StyleDefault, "  "+cmd.Label)
	}
	y++

	if sheet || held {
		groups := palette.Group(session.Commands(), d.context())
		for _, line := range plainCheatsheet(groups, w.parser) {
			put(tcell.StyleDefault, line)
		}
	}
	screen.Show()
}
