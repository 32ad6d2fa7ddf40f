package key

import "strings"

// validKeys is the vocabulary of non-modifier key tokens (lowercase).
var validKeys = map[string]struct{}{}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		validKeys[string(c)] = struct{}{}
	}
	for c := '0'; c <= '9'; c++ {
		validKeys[string(c)] = struct{}{}
	}
	for _, name := range []string{
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
		"escape", "enter", "tab", "space", "backspace", "delete", "insert",
		"home", "end", "pageup", "pagedown",
		"arrowup", "arrowdown", "arrowleft", "arrowright",
		"up", "down", "left", "right",
		"[", "]", "\\", ";", "'", ",", ".", "/", "`", "-", "=",
		"bracketleft", "bracketright", "backslash", "semicolon", "quote",
		"comma", "period", "slash", "backquote", "minus", "equal",
	} {
		validKeys[name] = struct{}{}
	}
}

// IsFunctionKey returns true if name is one of f1-f12.
func IsFunctionKey(name string) bool {
	name = strings.ToLower(name)
	if len(name) < 2 || name[0] != 'f' {
		return false
	}
	_, ok := validKeys[name]
	return ok && name[1] >= '1' && name[1] <= '9'
}

// Names returns the key vocabulary. The order is unspecified.
func Names() []string {
	names := make([]string, 0, len(validKeys))
	for name := range validKeys {
		names = append(names, name)
	}
	return names
}
