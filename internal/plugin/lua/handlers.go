package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybinds/internal/command"
)

// HandlersGlobal is the global table scripts register handlers in.
const HandlersGlobal = "handlers"

// LoadHandlers runs src and returns a command handler for every function
// in the global handlers table.
func (s *State) LoadHandlers(src string) (map[string]command.Handler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	s.L.SetGlobal(HandlersGlobal, s.L.NewTable())
	if err := s.run(func() error { return s.L.DoString(src) }); err != nil {
		return nil, fmt.Errorf("loading handlers: %w", err)
	}

	tbl, ok := s.L.GetGlobal(HandlersGlobal).(*lua.LTable)
	if !ok {
		return nil, ErrNoHandlers
	}

	handlers := make(map[string]command.Handler)
	tbl.ForEach(func(k, v lua.LValue) {
		id, ok := k.(lua.LString)
		if !ok {
			return
		}
		fn, ok := v.(*lua.LFunction)
		if !ok {
			s.log.Info("ignoring non-function handler", "id", string(id), "type", v.Type().String())
			return
		}
		handlers[string(id)] = s.handler(string(id), fn)
	})
	return handlers, nil
}

// HandlerIDs returns the sorted IDs of handlers.
func HandlerIDs(handlers map[string]command.Handler) []string {
	ids := make([]string, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *State) handler(id string, fn *lua.LFunction) command.Handler {
	return func(ctx command.Context, ev command.Event) command.Result {
		res, err := s.call(fn, ctx, ev)
		if err != nil {
			s.log.Error(err, "lua handler failed", "id", id)
			return command.NotHandled
		}
		return res
	}
}

func (s *State) call(fn *lua.LFunction, ctx command.Context, ev command.Event) (command.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return command.NotHandled, ErrStateClosed
	}

	var ret lua.LValue = lua.LNil
	err := s.run(func() error {
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			mapToTable(s.L, ctx), eventToLua(s.L, ev)); err != nil {
			return err
		}
		ret = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	if err != nil {
		return command.NotHandled, err
	}
	if ret == lua.LFalse {
		return command.NotHandled, nil
	}
	return command.Handled, nil
}

// eventToLua describes ev as a table with kind, text and lookups fields.
func eventToLua(L *lua.LState, ev command.Event) lua.LValue {
	if ev == nil {
		return lua.LNil
	}

	t := L.NewTable()
	if s, ok := ev.(fmt.Stringer); ok {
		t.RawSetString("text", lua.LString(s.String()))
	}
	switch e := ev.(type) {
	case interface{ Lookups() []string }:
		t.RawSetString("kind", lua.LString("key"))
		t.RawSetString("lookups", ToLuaValue(L, e.Lookups()))
	case interface{ Lookup() string }:
		t.RawSetString("kind", lua.LString("mouse"))
		t.RawSetString("lookups", ToLuaValue(L, []string{e.Lookup()}))
	}
	return t
}
