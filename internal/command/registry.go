package command

// Dedupe collapses commands sharing an ID. The last registration wins but
// keeps the position of the first, so inner scopes can shadow outer ones
// without reordering the list.
func Dedupe(cmds []*Command) []*Command {
	index := make(map[string]int, len(cmds))
	result := make([]*Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if i, ok := index[cmd.ID]; ok {
			result[i] = cmd
			continue
		}
		index[cmd.ID] = len(result)
		result = append(result, cmd)
	}
	return result
}

// Visible dedupes cmds and drops hidden and unbound commands. This is the
// set palettes and cheatsheets show.
func Visible(cmds []*Command) []*Command {
	deduped := Dedupe(cmds)
	result := deduped[:0]
	for _, cmd := range deduped {
		if cmd.Hidden || !cmd.HasBindings() {
			continue
		}
		result = append(result, cmd)
	}
	return result
}

// Find returns the last command registered under id, or nil.
func Find(cmds []*Command, id string) *Command {
	for i := len(cmds) - 1; i >= 0; i-- {
		if cmds[i] != nil && cmds[i].ID == id {
			return cmds[i]
		}
	}
	return nil
}

// ExecuteByID runs the command registered under id if it is active.
// Unbound commands are reachable this way. The event passed to the handler
// is nil. It returns false when no such command exists or it is inactive.
func ExecuteByID(cmds []*Command, id string, ctx Context) (Result, bool) {
	cmd := Find(cmds, id)
	if cmd == nil || cmd.Execute == nil {
		return NotHandled, false
	}
	if ctx == nil {
		ctx = Context{}
	}
	if !IsActive(cmd, ctx) {
		return NotHandled, false
	}
	return cmd.Execute(ctx, nil), true
}
