package mouse

import (
	"fmt"
	"time"

	"github.com/dshills/keybinds/internal/input/key"
)

// Button represents a mouse button. Values follow the usual host
// numbering: 0 primary, 1 auxiliary (middle), 2 secondary (right).
type Button uint8

const (
	// ButtonPrimary is the primary (left) mouse button.
	ButtonPrimary Button = iota
	// ButtonMiddle is the auxiliary (middle) mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns the canonical button name used in lookup strings.
// Buttons outside the vocabulary are reported as "click", which is how
// hosts with more buttons fall back to the primary binding.
func (b Button) String() string {
	switch b {
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "click"
	}
}

// buttonNameMap maps mouse tokens (lowercase) to buttons.
var buttonNameMap = map[string]Button{
	"click":       ButtonPrimary,
	"leftclick":   ButtonPrimary,
	"left":        ButtonPrimary,
	"rightclick":  ButtonRight,
	"right":       ButtonRight,
	"middleclick": ButtonMiddle,
	"middle":      ButtonMiddle,
}

func buttonNames() []string {
	names := make([]string, 0, len(buttonNameMap))
	for name := range buttonNameMap {
		names = append(names, name)
	}
	return names
}

// Binding is the canonical form of a mouse binding string.
type Binding struct {
	// Mods holds the keyboard modifiers, with "$mod" already resolved.
	Mods key.Modifier

	// Button is the mouse button.
	Button Button
}

// Lookup returns the canonical lookup string, e.g. "ctrl+click".
func (b Binding) Lookup() string {
	return b.Mods.Prefix() + b.Button.String()
}

// String returns the canonical form. Parsing it yields b again.
func (b Binding) String() string {
	return b.Lookup()
}

// Parse parses a mouse binding like "$mod+Click" or "MiddleClick" with
// the given key parser's platform.
func Parse(p key.Parser, text string) (Binding, error) {
	mods, rest := p.Split(text)
	if mods == key.ModNone && len(rest) == 0 {
		return Binding{}, &key.BindingError{Input: text, Kind: "mouse", Reason: key.ReasonEmpty}
	}
	if len(rest) == 0 {
		return Binding{}, &key.BindingError{Input: text, Kind: "mouse", Reason: key.ReasonNoKey}
	}
	if len(rest) > 1 {
		return Binding{}, &key.BindingError{Input: text, Kind: "mouse", Reason: key.ReasonMultipleKeys, Tokens: rest}
	}

	btn, ok := buttonNameMap[rest[0]]
	if !ok {
		return Binding{}, &key.BindingError{
			Input:      text,
			Kind:       "mouse",
			Reason:     key.ReasonUnknownKey,
			Tokens:     rest,
			Suggestion: key.Suggest(rest[0], buttonNames()),
		}
	}
	return Binding{Mods: mods, Button: btn}, nil
}

// ParseMouse parses a mouse binding for the current platform.
func ParseMouse(text string) (Binding, error) {
	return Parse(key.DefaultParser(), text)
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Event represents a mouse button press.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a press event with the current timestamp.
func NewEvent(button Button, mods key.Modifier, pos Position) Event {
	return Event{
		Position:  pos,
		Button:    button,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// Lookup returns the single canonical lookup string for the event.
func (e Event) Lookup() string {
	return e.Modifiers.Prefix() + e.Button.String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Button: %s, Modifiers: %s, Position: %d,%d}",
		e.Button, e.Modifiers.String(), e.Position.X, e.Position.Y)
}
