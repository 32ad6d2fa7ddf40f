// Package config holds binding schemas and the Binding Store.
//
// A Schema maps command IDs to their default presentation and bindings.
// Users customize bindings through Overrides, which the Store persists as
// a single JSON object in a kv.Store and merges over the schema:
//
//	schema, _ := config.DefineSchema(config.Schema{
//	    "selection.delete": {Label: "Delete", Category: "Edit", Keys: []string{"Delete"}},
//	})
//	store := config.NewStore(schema, "myapp:keybinds", kv.NewMemory())
//	store.SaveOne("selection.delete", config.Override{Keys: []string{"$mod+d"}})
//
// An Override field left nil falls back to the schema; an empty, non-nil
// slice unbinds.
//
// # Sub-packages
//
//   - kv: persistence backends (memory, JSON file, SQLite)
//   - loader: schema file decoding (TOML, YAML, JSON)
//   - notify: synchronous change notification
//   - watcher: file watching for live reload
package config
