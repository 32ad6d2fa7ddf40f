package dispatcher

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/mouse"
)

func TestConvertTcellKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), []string{"k"}},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone), []string{"shift+k"}},
		{"upper rune reported shifted", tcell.NewEventKey(tcell.KeyRune, 'P', tcell.ModShift), []string{"shift+p"}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), []string{"space"}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), []string{"alt+x"}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []string{"escape"}},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), []string{"shift+arrowup"}},
		{"page", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), []string{"pagedown"}},
		{"function", tcell.NewEventKey(tcell.KeyF11, 0, tcell.ModNone), []string{"f11"}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), []string{"shift+tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertTcellKey(tt.ev)
			if got == nil {
				t.Fatal("convertTcellKey = nil")
			}
			lookups := got.Lookups()
			if len(lookups) != len(tt.want) || lookups[0] != tt.want[0] {
				t.Errorf("Lookups() = %v, want %v", lookups, tt.want)
			}
		})
	}
}

func TestTcellSourceMousePressEdge(t *testing.T) {
	src := NewTcellSource(nil, nil)
	var presses []string
	src.AddMouseListener(func(ev *MouseEvent) { presses = append(presses, ev.Lookup()) })

	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button3, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button3, tcell.ModNone)) // drag
	src.HandleEvent(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button2, tcell.ModCtrl))

	if len(presses) != 2 || presses[0] != "middle" || presses[1] != "ctrl+right" {
		t.Errorf("presses = %v, want [middle ctrl+right]", presses)
	}
}

func TestTcellSourceDispatch(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("quit", []string{"q"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	typing := true
	src := NewTcellSource(nil, func() bool { return typing })
	d.Attach(src)

	if src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q consumed while typing")
	}
	typing = false
	if !src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q not consumed")
	}
}

func TestTcellSourceShiftedRune(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{
		r.cmd("lower", []string{"k"}, command.Handled),
		r.cmd("upper", []string{"Shift+K"}, command.Handled),
	}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	src := NewTcellSource(nil, nil)
	d.Attach(src)

	src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone))
	src.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	if len(r.calls) != 2 || r.calls[0] != "upper" || r.calls[1] != "lower" {
		t.Errorf("calls = %v, want [upper lower]", r.calls)
	}
}

func TestConvertTcellAndTeaAgree(t *testing.T) {
	for _, r := range []rune{'k', 'K', 'z', 'Z', '1'} {
		tc := convertTcellKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		tm := convertTeaKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if tc == nil || tm == nil {
			t.Fatalf("%q: conversion returned nil", r)
		}
		if tc.Lookups()[0] != tm.Lookups()[0] {
			t.Errorf("%q: tcell lookup %q, tea lookup %q", r, tc.Lookups()[0], tm.Lookups()[0])
		}
	}
}

func TestConvertTeaKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, "k"},
		{"upper", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'K'}}, "shift+k"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "alt+x"},
		{"ctrl", tea.KeyMsg{Type: tea.KeyCtrlK}, "ctrl+k"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "escape"},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, "arrowup"},
		{"page", tea.KeyMsg{Type: tea.KeyPgUp}, "pageup"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertTeaKey(tt.msg)
			if got == nil {
				t.Fatal("convertTeaKey = nil")
			}
			if l := got.Lookups(); len(l) == 0 || l[0] != tt.want {
				t.Errorf("Lookups() = %v, want %q first", l, tt.want)
			}
		})
	}

	paste := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello"), Paste: true}
	if convertTeaKey(paste) != nil {
		t.Error("paste should not convert to a key press")
	}
}

func TestConvertTeaMouse(t *testing.T) {
	press := tea.MouseMsg{X: 4, Y: 2, Ctrl: true, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle}
	ev := convertTeaMouse(press)
	if ev == nil || ev.Lookup() != "ctrl+middle" || ev.Position != (mouse.Position{X: 4, Y: 2}) {
		t.Errorf("convertTeaMouse = %+v", ev)
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if convertTeaMouse(release) != nil {
		t.Error("release should not convert")
	}
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	if convertTeaMouse(wheel) != nil {
		t.Error("wheel should not convert")
	}
}

type countingModel struct {
	updates int
}

func (m *countingModel) Init() tea.Cmd { return nil }

func (m *countingModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	m.updates++
	return m, nil
}

func (m *countingModel) View() string { return "" }

func TestTeaMiddleware(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("palette", []string{"ctrl+k"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	src := NewTeaSource(nil)
	d.Attach(src)

	inner := &countingModel{}
	model := src.Middleware(inner)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	_, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if inner.updates != 2 {
		t.Errorf("inner updates = %d, want 2", inner.updates)
	}
	if len(r.calls) != 1 {
		t.Errorf("calls = %v", r.calls)
	}
}
