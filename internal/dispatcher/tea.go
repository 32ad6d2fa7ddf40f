package dispatcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// TeaSource adapts Bubble Tea messages to Source.
type TeaSource struct {
	*Target

	focus FocusFunc
}

// NewTeaSource creates a Bubble Tea source. focus may be nil.
func NewTeaSource(focus FocusFunc) *TeaSource {
	return &TeaSource{Target: NewTarget(), focus: focus}
}

// HandleMsg emits key and mouse press messages and reports whether a
// listener consumed msg. Other messages are ignored.
func (s *TeaSource) HandleMsg(msg tea.Msg) bool {
	switch m := msg.(type) {
	case tea.KeyMsg:
		kev := convertTeaKey(m)
		if kev == nil {
			return false
		}
		if s.focus != nil {
			kev.InInput = s.focus()
		}
		return s.EmitKey(kev)

	case tea.MouseMsg:
		mev := convertTeaMouse(m)
		if mev == nil {
			return false
		}
		return s.EmitMouse(mev)
	}
	return false
}

// Middleware wraps model so that consumed key and mouse messages never
// reach its Update.
func (s *TeaSource) Middleware(model tea.Model) tea.Model {
	return &teaModel{src: s, inner: model}
}

type teaModel struct {
	src   *TeaSource
	inner tea.Model
}

func (m *teaModel) Init() tea.Cmd {
	return m.inner.Init()
}

func (m *teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.src.HandleMsg(msg) {
		return m, nil
	}
	inner, cmd := m.inner.Update(msg)
	m.inner = inner
	return m, cmd
}

func (m *teaModel) View() string {
	return m.inner.View()
}

// teaKeyNames maps Bubble Tea key names onto the binding vocabulary.
var teaKeyNames = map[string]string{
	" ":      "space",
	"esc":    "escape",
	"pgup":   "pageup",
	"pgdown": "pagedown",
	"up":     "arrowup",
	"down":   "arrowdown",
	"left":   "arrowleft",
	"right":  "arrowright",
}

// convertTeaKey parses the message's string form ("ctrl+shift+up", "A").
// Pastes and multi-rune messages are not key presses and yield nil.
func convertTeaKey(msg tea.KeyMsg) *KeyEvent {
	if msg.Paste || len(msg.Runes) > 1 {
		return nil
	}

	s := msg.String()
	var mods key.Modifier
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			mods = mods.With(key.ModCtrl)
			s = s[len("ctrl+"):]
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			mods = mods.With(key.ModAlt)
			s = s[len("alt+"):]
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			mods = mods.With(key.ModShift)
			s = s[len("shift+"):]
		default:
			return newTeaKeyEvent(s, mods)
		}
	}
}

func newTeaKeyEvent(name string, mods key.Modifier) *KeyEvent {
	if mapped, ok := teaKeyNames[name]; ok {
		return NewKeyEvent(mapped, "", mods)
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsUpper(r) {
		mods = mods.With(key.ModShift)
	}
	return NewKeyEvent(strings.ToLower(name), "", mods)
}

func convertTeaMouse(msg tea.MouseMsg) *MouseEvent {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	var btn mouse.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		btn = mouse.ButtonPrimary
	case tea.MouseButtonMiddle:
		btn = mouse.ButtonMiddle
	case tea.MouseButtonRight:
		btn = mouse.ButtonRight
	default:
		return nil
	}

	var mods key.Modifier
	if msg.Ctrl {
		mods = mods.With(key.ModCtrl)
	}
	if msg.Alt {
		mods = mods.With(key.ModAlt)
	}
	if msg.Shift {
		mods = mods.With(key.ModShift)
	}

	mev := NewMouseEvent(btn, mods)
	mev.Position = mouse.Position{X: msg.X, Y: msg.Y}
	return mev
}
