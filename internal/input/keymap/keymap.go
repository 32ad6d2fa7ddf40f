package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// Tables index commands by canonical lookup string. Candidate lists keep
// command registration order.
type Tables struct {
	// Keys maps keyboard lookup strings ("ctrl+k") to candidates.
	Keys map[string][]*command.Command

	// Mouse maps mouse lookup strings ("middle") to candidates.
	Mouse map[string][]*command.Command
}

// Build parses every binding of cmds for the current platform.
func Build(cmds []*command.Command) (*Tables, error) {
	return BuildWithParser(key.DefaultParser(), cmds)
}

// BuildWithParser parses every binding of cmds with p and indexes the
// commands by canonical lookup string. Commands sharing an ID are collapsed
// first so the last registration is the one that fires. The first invalid
// binding aborts the build with an error naming the command.
func BuildWithParser(p key.Parser, cmds []*command.Command) (*Tables, error) {
	t := &Tables{
		Keys:  make(map[string][]*command.Command),
		Mouse: make(map[string][]*command.Command),
	}

	for _, cmd := range command.Dedupe(cmds) {
		for _, text := range cmd.Keys {
			b, err := p.ParseKey(text)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", cmd.ID, err)
			}
			t.Keys[b.Lookup()] = appendOnce(t.Keys[b.Lookup()], cmd)
		}
		for _, text := range cmd.Mouse {
			b, err := mouse.Parse(p, text)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", cmd.ID, err)
			}
			t.Mouse[b.Lookup()] = appendOnce(t.Mouse[b.Lookup()], cmd)
		}
	}
	return t, nil
}

// appendOnce adds cmd unless it is already the tail, which happens when a
// command lists two spellings of the same binding.
func appendOnce(list []*command.Command, cmd *command.Command) []*command.Command {
	if n := len(list); n > 0 && list[n-1] == cmd {
		return list
	}
	return append(list, cmd)
}

// KeyCandidates returns the candidates for the first lookup string that
// has any. Lookups are tried in the order given.
func (t *Tables) KeyCandidates(lookups []string) []*command.Command {
	for _, l := range lookups {
		if cands := t.Keys[l]; len(cands) > 0 {
			return cands
		}
	}
	return nil
}

// MouseCandidates returns the candidates for a mouse lookup string.
func (t *Tables) MouseCandidates(lookup string) []*command.Command {
	return t.Mouse[lookup]
}

// Lookups returns every bound keyboard and mouse lookup string, sorted.
func (t *Tables) Lookups() []string {
	out := make([]string, 0, len(t.Keys)+len(t.Mouse))
	for l := range t.Keys {
		out = append(out, l)
	}
	for l := range t.Mouse {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Conflicts returns the lookup strings bound to more than one command.
// Sharing a trigger is legal; this exists for diagnostics.
func (t *Tables) Conflicts() map[string][]string {
	out := make(map[string][]string)
	collect := func(m map[string][]*command.Command) {
		for l, cands := range m {
			if len(cands) < 2 {
				continue
			}
			ids := make([]string, len(cands))
			for i, c := range cands {
				ids[i] = c.ID
			}
			out[l] = ids
		}
	}
	collect(t.Keys)
	collect(t.Mouse)
	return out
}
