package key

import (
	"fmt"
	"strings"
)

// Event is a raw key press as reported by a host.
//
// Hosts disagree about what they report: Key is the logical key produced
// by the layout ("a", "Enter", "ArrowUp"), Code is the physical key
// ("KeyA", "Enter", "ArrowUp"). Either may be empty.
type Event struct {
	// Key is the logical key name.
	Key string

	// Code is the physical key code.
	Code string

	// Mods contains the modifier keys held during the press.
	Mods Modifier
}

// NewEvent creates a key event.
func NewEvent(key, code string, mods Modifier) Event {
	return Event{Key: key, Code: code, Mods: mods}
}

// Lookups returns the canonical lookup strings to try for this event, in
// order: the logical key, the physical code when it differs, and the bare
// letter when the code names a letter key ("KeyK" -> "k") and differs from
// the logical key.
func (e Event) Lookups() []string {
	prefix := e.Mods.Prefix()
	k := strings.ToLower(e.Key)
	code := strings.ToLower(e.Code)

	lookups := make([]string, 0, 3)
	if k != "" {
		lookups = append(lookups, prefix+k)
	}
	if code != "" && code != k {
		lookups = append(lookups, prefix+code)
	}
	if letter, ok := strings.CutPrefix(code, "key"); ok && letter != "" && letter != k {
		lookups = append(lookups, prefix+letter)
	}
	return lookups
}

// String returns a readable representation like "Ctrl+Shift+k".
func (e Event) String() string {
	name := e.Key
	if name == "" {
		name = e.Code
	}
	if e.Mods.IsEmpty() {
		return name
	}
	return e.Mods.String() + "+" + name
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %q, Code: %q, Mods: %s}", e.Key, e.Code, e.Mods.String())
}
