package command

import (
	"fmt"

	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// Validate checks every command's identity, handler and bindings using the
// current platform. The first failure is returned, wrapped with the
// offending command ID.
func Validate(cmds []*Command) error {
	return ValidateWithParser(key.DefaultParser(), cmds)
}

// ValidateWithParser is Validate with "$mod" resolved for p's platform.
func ValidateWithParser(p key.Parser, cmds []*Command) error {
	for i, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if cmd.ID == "" {
			return fmt.Errorf("command #%d: %w", i, ErrMissingID)
		}
		if cmd.Execute == nil {
			return fmt.Errorf("command %q: %w", cmd.ID, ErrNoHandler)
		}
		for _, k := range cmd.Keys {
			if _, err := p.ParseKey(k); err != nil {
				return fmt.Errorf("command %q: %w", cmd.ID, err)
			}
		}
		for _, m := range cmd.Mouse {
			if _, err := mouse.Parse(p, m); err != nil {
				return fmt.Errorf("command %q: %w", cmd.ID, err)
			}
		}
	}
	return nil
}
