package config

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/keybinds/internal/config/loader"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

// Entry is the default definition of one command.
type Entry struct {
	Label        string   `json:"label" toml:"label" yaml:"label"`
	Category     string   `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
	Keys         []string `json:"keys,omitempty" toml:"keys,omitempty" yaml:"keys,omitempty"`
	Mouse        []string `json:"mouse,omitempty" toml:"mouse,omitempty" yaml:"mouse,omitempty"`
	Hidden       bool     `json:"hidden,omitempty" toml:"hidden,omitempty" yaml:"hidden,omitempty"`
	When         string   `json:"when,omitempty" toml:"when,omitempty" yaml:"when,omitempty"`
	CaptureInput bool     `json:"captureInput,omitempty" toml:"capture_input,omitempty" yaml:"captureInput,omitempty"`
}

// Schema maps command IDs to their defaults.
type Schema map[string]Entry

// Bindings is a schema with overrides applied.
type Bindings = Schema

// IDs returns the schema's command IDs in sorted order.
func (s Schema) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a copy of s that shares no slices with it.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for id, entry := range s {
		entry.Keys = slices.Clone(entry.Keys)
		entry.Mouse = slices.Clone(entry.Mouse)
		out[id] = entry
	}
	return out
}

// Override replaces a command's bindings. A nil field falls back to the
// schema; an empty slice unbinds.
type Override struct {
	Keys  []string `json:"keys"`
	Mouse []string `json:"mouse"`
}

// MarshalJSON omits nil fields but keeps empty ones, so an unbind survives
// a round trip.
func (o Override) MarshalJSON() ([]byte, error) {
	m := make(map[string][]string, 2)
	if o.Keys != nil {
		m["keys"] = o.Keys
	}
	if o.Mouse != nil {
		m["mouse"] = o.Mouse
	}
	return json.Marshal(m)
}

// Overrides maps command IDs to user customizations.
type Overrides map[string]Override

// Clone returns a copy of o that shares no slices with it. Empty slices
// stay empty rather than becoming nil.
func (o Overrides) Clone() Overrides {
	if o == nil {
		return nil
	}
	out := make(Overrides, len(o))
	for id, override := range o {
		out[id] = Override{Keys: slices.Clone(override.Keys), Mouse: slices.Clone(override.Mouse)}
	}
	return out
}

// Merge applies overrides to schema. Overrides for IDs absent from the
// schema are ignored. Neither input is modified.
func Merge(schema Schema, overrides Overrides) Bindings {
	result := make(Bindings, len(schema))
	for id, entry := range schema {
		if o, ok := overrides[id]; ok {
			if o.Keys != nil {
				entry.Keys = o.Keys
			}
			if o.Mouse != nil {
				entry.Mouse = o.Mouse
			}
		}
		result[id] = entry
	}
	return result
}

// DefineSchema checks the shape of s and returns it unchanged: every ID
// and label must be non-empty and every binding must parse.
func DefineSchema(s Schema) (Schema, error) {
	return DefineSchemaWithParser(key.DefaultParser(), s)
}

// DefineSchemaWithParser is DefineSchema with an explicit platform parser.
func DefineSchemaWithParser(p key.Parser, s Schema) (Schema, error) {
	for _, id := range s.IDs() {
		entry := s[id]
		if id == "" {
			return nil, fmt.Errorf("%w: empty command id", ErrInvalidSchema)
		}
		if entry.Label == "" {
			return nil, fmt.Errorf("%w: command %q: empty label", ErrInvalidSchema, id)
		}
		for _, k := range entry.Keys {
			if _, err := p.ParseKey(k); err != nil {
				return nil, fmt.Errorf("%w: command %q: %w", ErrInvalidSchema, id, err)
			}
		}
		for _, m := range entry.Mouse {
			if _, err := mouse.Parse(p, m); err != nil {
				return nil, fmt.Errorf("%w: command %q: %w", ErrInvalidSchema, id, err)
			}
		}
	}
	return s, nil
}

// Listed is one row of a flat binding listing.
type Listed struct {
	ID string
	Entry
}

// List returns the non-hidden entries of s sorted by category, then ID.
func List(s Schema) []Listed {
	var out []Listed
	for id, entry := range s {
		if entry.Hidden {
			continue
		}
		out = append(out, Listed{ID: id, Entry: entry})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LoadSchemaFile reads a schema from a TOML, YAML or JSON file, chosen by
// extension, and checks it with DefineSchema.
func LoadSchemaFile(path string) (Schema, error) {
	return LoadSchema(loader.New(loader.OSFS{}), key.DefaultParser(), path)
}

// LoadSchema reads and checks a schema through l.
func LoadSchema(l *loader.Loader, p key.Parser, path string) (Schema, error) {
	var s Schema
	if err := l.DecodeFile(path, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Schema{}
	}
	return DefineSchemaWithParser(p, s)
}
