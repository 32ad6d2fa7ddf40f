package dispatcher

import (
	"fmt"

	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// signal carries the consumption flags shared by key and mouse events.
type signal struct {
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event's default behavior as suppressed.
func (s *signal) PreventDefault() { s.defaultPrevented = true }

// StopPropagation keeps later listeners from seeing the event.
func (s *signal) StopPropagation() { s.propagationStopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (s *signal) DefaultPrevented() bool { return s.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (s *signal) PropagationStopped() bool { return s.propagationStopped }

// KeyEvent is a key press or release delivered by a Source.
type KeyEvent struct {
	signal

	// Key is the logical key produced by the layout ("k", "Enter").
	Key string

	// Code is the physical key ("KeyK"). Empty when the host has none.
	Code string

	// Mods are the modifiers held during the press.
	Mods key.Modifier

	// InInput reports that keyboard focus is in an editable text field.
	InInput bool

	// Up marks a key release. The dispatcher ignores releases.
	Up bool
}

// NewKeyEvent creates a key press event.
func NewKeyEvent(k, code string, mods key.Modifier) *KeyEvent {
	return &KeyEvent{Key: k, Code: code, Mods: mods}
}

// Lookups returns the ordered lookup strings for the event.
func (e *KeyEvent) Lookups() []string {
	return key.NewEvent(e.Key, e.Code, e.Mods).Lookups()
}

// String returns a readable form like "Ctrl+k".
func (e *KeyEvent) String() string {
	s := key.NewEvent(e.Key, e.Code, e.Mods).String()
	if e.Up {
		s += " (up)"
	}
	return s
}

// MouseEvent is a mouse button press delivered by a Source.
type MouseEvent struct {
	signal

	// Button is the pressed button.
	Button mouse.Button

	// Mods are the keyboard modifiers held during the press.
	Mods key.Modifier

	// Position is where the press happened, in host coordinates.
	Position mouse.Position
}

// NewMouseEvent creates a mouse press event.
func NewMouseEvent(button mouse.Button, mods key.Modifier) *MouseEvent {
	return &MouseEvent{Button: button, Mods: mods}
}

// Lookup returns the single lookup string for the event.
func (e *MouseEvent) Lookup() string {
	return mouse.NewEvent(e.Button, e.Mods, e.Position).Lookup()
}

// String returns a readable form like "ctrl+middle@3,4".
func (e *MouseEvent) String() string {
	return fmt.Sprintf("%s@%d,%d", e.Lookup(), e.Position.X, e.Position.Y)
}
