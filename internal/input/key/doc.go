// Package key parses keyboard binding strings and derives lookup strings
// from raw key events.
//
// This package defines the keyboard half of the binding grammar:
//
//   - Modifier: bitset of Ctrl, Alt, Shift and Meta
//   - Platform: decides what the "$mod" pseudo-modifier means
//   - Binding: the canonical form of a binding string
//   - Event: a raw key press with logical key, physical code and modifiers
//
// # Binding Syntax
//
// Bindings are "+"-separated tokens, case-insensitive, whitespace trimmed:
//
//   - Simple keys: "a", "Escape", "F5", "ArrowUp", ","
//   - With modifiers: "Ctrl+S", "Alt+Shift+x", "$mod+k"
//
// Exactly one non-modifier token is required. "$mod" resolves to Meta on
// Apple platforms and Ctrl elsewhere, once, when the binding is parsed.
//
// # Lookup Strings
//
// Every Binding has a canonical lookup string with a fixed modifier order:
//
//	ctrl+alt+shift+meta+<key>
//
// so "Shift+Alt+x" and "Alt+Shift+X" both become "alt+shift+x". Events
// produce the same strings through Event.Lookups.
package key
