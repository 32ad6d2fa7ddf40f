package key

import (
	"strings"
)

// Binding is the canonical form of a keyboard binding string.
type Binding struct {
	// Mods holds the modifiers, with "$mod" already resolved.
	Mods Modifier

	// Key is the lowercase non-modifier token.
	Key string
}

// Lookup returns the canonical lookup string, e.g. "ctrl+shift+k".
func (b Binding) Lookup() string {
	return b.Mods.Prefix() + b.Key
}

// String returns the canonical form. Parsing it yields b again.
func (b Binding) String() string {
	return b.Lookup()
}

// Parser parses binding strings for a fixed platform. The platform is
// captured once so "$mod" resolves the same way for every binding the
// parser produces.
type Parser struct {
	Platform Platform
}

// NewParser creates a parser that resolves "$mod" for p.
func NewParser(p Platform) Parser {
	return Parser{Platform: p}
}

// DefaultParser returns a parser for the current platform.
func DefaultParser() Parser {
	return NewParser(CurrentPlatform())
}

// ParseKey parses a binding like "Ctrl+Shift+K" or "$mod+k".
//
// Tokens are split on "+", trimmed and compared case-insensitively.
// Exactly one non-modifier token is required and it must be a known key.
func (p Parser) ParseKey(text string) (Binding, error) {
	mods, rest := p.Split(text)
	if mods == ModNone && len(rest) == 0 {
		return Binding{}, &BindingError{Input: text, Kind: "key", Reason: ReasonEmpty}
	}
	if len(rest) == 0 {
		return Binding{}, &BindingError{Input: text, Kind: "key", Reason: ReasonNoKey}
	}
	if len(rest) > 1 {
		return Binding{}, &BindingError{Input: text, Kind: "key", Reason: ReasonMultipleKeys, Tokens: rest}
	}

	k := rest[0]
	if _, ok := validKeys[k]; !ok {
		return Binding{}, &BindingError{
			Input:      text,
			Kind:       "key",
			Reason:     ReasonUnknownKey,
			Tokens:     rest,
			Suggestion: Suggest(k, Names()),
		}
	}
	return Binding{Mods: mods, Key: k}, nil
}

// Split lowercases text, splits it on "+" and separates modifier tokens
// from the remaining tokens. Empty tokens are dropped.
func (p Parser) Split(text string) (Modifier, []string) {
	var mods Modifier
	var rest []string
	for _, part := range strings.Split(strings.ToLower(text), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m, ok := ModifierFromName(part, p.Platform); ok {
			mods = mods.With(m)
			continue
		}
		rest = append(rest, part)
	}
	return mods, rest
}

// ParseKey parses a keyboard binding for the current platform.
func ParseKey(text string) (Binding, error) {
	return DefaultParser().ParseKey(text)
}

// Normalize parses text and returns its canonical lookup form, with $mod
// resolved for p's platform.
func (p Parser) Normalize(text string) (string, error) {
	b, err := p.ParseKey(text)
	if err != nil {
		return "", err
	}
	return b.Lookup(), nil
}
