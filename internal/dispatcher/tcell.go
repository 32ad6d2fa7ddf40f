package dispatcher

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// TcellSource adapts a tcell screen to Source. Terminals report neither
// physical key codes nor key releases, so events carry only Key and Mods.
type TcellSource struct {
	*Target

	screen tcell.Screen
	focus  FocusFunc

	mu      sync.Mutex
	buttons tcell.ButtonMask
}

// NewTcellSource wraps screen. focus may be nil.
func NewTcellSource(screen tcell.Screen, focus FocusFunc) *TcellSource {
	return &TcellSource{
		Target: NewTarget(),
		screen: screen,
		focus:  focus,
	}
}

// Run polls the screen and emits events until ctx is done or the screen is
// finalized. Events that no listener consumed are passed to fallback,
// which may be nil.
func (s *TcellSource) Run(ctx context.Context, fallback func(tcell.Event)) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.HandleEvent(ev) && fallback != nil {
			fallback(ev)
		}
	}
}

// HandleEvent converts and emits a single tcell event. It reports whether
// a listener consumed it. Hosts with their own event loop call this
// directly.
func (s *TcellSource) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		kev := convertTcellKey(e)
		if kev == nil {
			return false
		}
		if s.focus != nil {
			kev.InInput = s.focus()
		}
		return s.EmitKey(kev)

	case *tcell.EventMouse:
		mev := s.pressEdge(e)
		if mev == nil {
			return false
		}
		return s.EmitMouse(mev)
	}
	return false
}

// pressEdge turns tcell's button state reports into press events: only
// buttons that were up in the previous report produce an event.
func (s *TcellSource) pressEdge(e *tcell.EventMouse) *MouseEvent {
	s.mu.Lock()
	pressed := e.Buttons() &^ s.buttons
	s.buttons = e.Buttons()
	s.mu.Unlock()

	var btn mouse.Button
	switch {
	case pressed&tcell.Button1 != 0:
		btn = mouse.ButtonPrimary
	case pressed&tcell.Button2 != 0:
		btn = mouse.ButtonRight
	case pressed&tcell.Button3 != 0:
		btn = mouse.ButtonMiddle
	default:
		return nil
	}

	x, y := e.Position()
	mev := NewMouseEvent(btn, convertTcellMod(e.Modifiers()))
	mev.Position = mouse.Position{X: x, Y: y}
	return mev
}

// convertTcellKey maps a tcell key event onto the binding vocabulary. It
// returns nil for keys the vocabulary has no name for.
func convertTcellKey(e *tcell.EventKey) *KeyEvent {
	mods := convertTcellMod(e.Modifiers())

	var name string
	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		switch {
		case r == ' ':
			name = "space"
		case unicode.IsUpper(r):
			name = string(unicode.ToLower(r))
			mods = mods.With(key.ModShift)
		default:
			name = strings.ToLower(string(r))
		}
	case tcell.KeyEscape:
		name = "escape"
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyBacktab:
		name = "tab"
		mods = mods.With(key.ModShift)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyDelete:
		name = "delete"
	case tcell.KeyInsert:
		name = "insert"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pageup"
	case tcell.KeyPgDn:
		name = "pagedown"
	case tcell.KeyUp:
		name = "arrowup"
	case tcell.KeyDown:
		name = "arrowdown"
	case tcell.KeyLeft:
		name = "arrowleft"
	case tcell.KeyRight:
		name = "arrowright"
	default:
		name = tcellSpecialKey(e.Key())
		if name == "" {
			return nil
		}
		if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
			mods = mods.With(key.ModCtrl)
		}
	}
	return NewKeyEvent(name, "", mods)
}

// tcellSpecialKey names function keys and the legacy control codes.
func tcellSpecialKey(k tcell.Key) string {
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return string(rune('a' + int(k-tcell.KeyCtrlA)))
	}
	return ""
}

func convertTcellMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
