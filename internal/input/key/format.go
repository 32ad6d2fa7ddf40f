package key

import "strings"

var appleSymbols = map[string]string{
	"ctrl":      "⌃",
	"control":   "⌃",
	"alt":       "⌥",
	"option":    "⌥",
	"shift":     "⇧",
	"meta":      "⌘",
	"cmd":       "⌘",
	"command":   "⌘",
	"backspace": "⌫",
	"delete":    "⌦",
	"enter":     "↵",
}

var pcNames = map[string]string{
	"ctrl":    "Ctrl",
	"control": "Ctrl",
	"alt":     "Alt",
	"option":  "Alt",
	"shift":   "Shift",
	"meta":    "Meta",
	"cmd":     "Meta",
	"command": "Meta",
}

// Format renders a binding string for display on platform p.
// On Apple platforms modifiers become symbols and are joined without a
// separator ("$mod+Shift+k" -> "⌘⇧K"); elsewhere names are joined with "+"
// ("Ctrl+Shift+K"). Format does not validate; other tokens are
// capitalized.
func Format(text string, p Platform) string {
	var parts []string
	for _, tok := range strings.Split(text, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)
		if lower == PlatformToken {
			if p == PlatformApple {
				lower = "meta"
			} else {
				lower = "ctrl"
			}
		}
		parts = append(parts, formatToken(lower, p))
	}

	if p == PlatformApple {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "+")
}

func formatToken(tok string, p Platform) string {
	if p == PlatformApple {
		if s, ok := appleSymbols[tok]; ok {
			return s
		}
	} else if s, ok := pcNames[tok]; ok {
		return s
	}
	if tok == "escape" {
		return "Esc"
	}
	if len(tok) == 1 || IsFunctionKey(tok) {
		return strings.ToUpper(tok)
	}
	return strings.ToUpper(tok[:1]) + tok[1:]
}
