package palette

import "github.com/dshills/keybinds/internal/command"

// OtherCategory collects commands without a category.
const OtherCategory = "Other"

// Entry is a grouped command with its activation state.
type Entry struct {
	Command *command.Command
	Active  bool
}

// Category is one cheatsheet section.
type Category struct {
	Name    string
	Entries []Entry
}

// Groups is the result of Group, in order of first appearance.
type Groups []Category

// Group partitions the visible commands by category for cheatsheets,
// applying the same collapsing and filtering as Search. Categories and
// entries keep registration order.
func Group(cmds []*command.Command, ctx command.Context) Groups {
	if ctx == nil {
		ctx = command.Context{}
	}

	index := make(map[string]int)
	var groups Groups
	for _, cmd := range command.Visible(cmds) {
		name := cmd.Category
		if name == "" {
			name = OtherCategory
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Category{Name: name})
		}
		groups[i].Entries = append(groups[i].Entries, Entry{
			Command: cmd,
			Active:  command.IsActive(cmd, ctx),
		})
	}
	return groups
}

// Map returns the groups keyed by category name.
func (g Groups) Map() map[string][]Entry {
	m := make(map[string][]Entry, len(g))
	for _, c := range g {
		m[c.Name] = c.Entries
	}
	return m
}

// Names returns the category names in order.
func (g Groups) Names() []string {
	names := make([]string, len(g))
	for i, c := range g {
		names[i] = c.Name
	}
	return names
}
