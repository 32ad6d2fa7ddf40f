package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/palette"
)

const testSchema = `
["file.open"]
label = "Open File"
category = "File"
keys = ["$mod+o"]

["file.save"]
label = "Save"
category = "File"
keys = ["$mod+s"]
when = "has(ctx.dirty) && ctx.dirty"

["edit.undo"]
label = "Undo"
category = "Edit"
keys = ["$mod+z"]

["edit.redo"]
label = "Redo"
category = "Edit"
keys = ["$mod+z"]

["debug.dump"]
label = "Dump"
keys = ["F12"]
hidden = true
`

type harness struct {
	dir string
	cfg string
}

func newHarness(t *testing.T, backend string) *harness {
	t.Helper()
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.toml")
	require.NoError(t, os.WriteFile(schema, []byte(testSchema), 0o644))

	storage := filepath.Join(dir, "overrides.json")
	if backend == "sqlite" {
		storage = filepath.Join(dir, "keybinds.db")
	}
	cfg := filepath.Join(dir, "keybinds.toml")
	content := "schema = " + quote(schema) + "\n" +
		"platform = \"other\"\n" +
		"log_level = \"error\"\n" +
		"[storage]\n" +
		"backend = " + quote(backend) + "\n" +
		"path = " + quote(storage) + "\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))
	return &harness{dir: dir, cfg: cfg}
}

func quote(s string) string {
	return `'` + s + `'`
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(append([]string{"--config", h.cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	h := newHarness(t, "file")
	out, err := h.run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "shared trigger ctrl+z: edit.redo, edit.undo")
	assert.Contains(t, out, "ok: 5 commands, 0 overrides")

	_, err = h.run(t, "validate", "--strict")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	h := newHarness(t, "file")

	out, err := h.run(t, "search", "save")
	require.NoError(t, err)
	assert.Contains(t, out, "file.save")
	assert.Contains(t, out, "inactive")
	assert.NotContains(t, out, "debug.dump")

	out, err = h.run(t, "search", "save", "--ctx", "dirty=true")
	require.NoError(t, err)
	assert.NotContains(t, out, "inactive")

	out, err = h.run(t, "search", "opf", "--matcher", "fuzzy")
	require.NoError(t, err)
	assert.Contains(t, out, "[O]")
	assert.Contains(t, out, "file.open")

	out, err = h.run(t, "search", "undo", "--matcher", "sahilm")
	require.NoError(t, err)
	assert.Contains(t, out, "edit.undo")

	_, err = h.run(t, "search", "x", "--matcher", "regex")
	assert.Error(t, err)
}

func TestCheatsheet(t *testing.T) {
	h := newHarness(t, "file")

	out, err := h.run(t, "cheatsheet", "--plain")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Edit", lines[0], "categories follow sorted command IDs")
	assert.Contains(t, out, "Ctrl+O")
	assert.Contains(t, out, " - Save")
	assert.NotContains(t, out, "Dump")

	out, err = h.run(t, "cheatsheet", "--columns", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Undo")
	assert.Contains(t, out, "Edit")
}

func TestBindingsRoundTrip(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			h := newHarness(t, backend)

			out, err := h.run(t, "bindings", "set", "file.open", "--keys", "F2,$mod+p")
			require.NoError(t, err)
			assert.Equal(t, "file.open: F2  Ctrl+P\n", out)

			out, err = h.run(t, "bindings", "show")
			require.NoError(t, err)
			assert.Regexp(t, `\*\s+File\s+file\.open\s+Open File\s+F2  Ctrl\+P`, out)

			out, err = h.run(t, "validate")
			require.NoError(t, err)
			assert.Contains(t, out, "1 overrides")

			_, err = h.run(t, "bindings", "reset", "file.open")
			require.NoError(t, err)
			out, err = h.run(t, "bindings", "show")
			require.NoError(t, err)
			assert.NotContains(t, out, "*")
		})
	}
}

func TestBindingsSetErrors(t *testing.T) {
	h := newHarness(t, "file")

	_, err := h.run(t, "bindings", "set", "file.open")
	assert.Error(t, err, "no flags")

	_, err = h.run(t, "bindings", "set", "file.open", "--keys", "ctrl+nope")
	assert.ErrorIs(t, err, key.ErrInvalidBinding)

	_, err = h.run(t, "bindings", "set", "missing.cmd", "--keys", "F2")
	assert.ErrorIs(t, err, config.ErrUnknownCommand)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = h.run(t, "bindings", "set", "undo", "--keys", "F2")
	assert.ErrorIs(t, err, config.ErrUnknownCommand)
	assert.Contains(t, err.Error(), `did you mean edit.undo?`)

	_, err = h.run(t, "bindings", "reset", "undo")
	assert.ErrorIs(t, err, config.ErrUnknownCommand)

	_, err = h.run(t, "bindings", "reset")
	assert.Error(t, err)
}

func TestBindingsSetDropsDuplicateKeys(t *testing.T) {
	h := newHarness(t, "file")

	out, err := h.run(t, "bindings", "set", "file.open", "--keys", "$mod+p,Ctrl+P,F2")
	require.NoError(t, err)
	assert.Equal(t, "file.open: Ctrl+P  F2\n", out)
}

func TestBindingsUnbindAndResetAll(t *testing.T) {
	h := newHarness(t, "file")

	out, err := h.run(t, "bindings", "set", "edit.redo", "--keys=")
	require.NoError(t, err)
	assert.Equal(t, "edit.redo: \n", out)

	out, err = h.run(t, "validate")
	require.NoError(t, err)
	assert.NotContains(t, out, "shared trigger")

	out, err = h.run(t, "bindings", "reset", "--all")
	require.NoError(t, err)
	assert.Equal(t, "all bindings reset\n", out)

	out, err = h.run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "shared trigger")
}

func TestDefaultSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "keybinds.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("platform = 'apple'\n[storage]\nbackend = 'memory'\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd(&out, &bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "search", "palette"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "palette.open")
	assert.Contains(t, out.String(), "⌘K")
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "memory")
	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "keybinds dev"))
}

func TestParseContext(t *testing.T) {
	ctx := parseContext(map[string]string{"dirty": "true", "count": "3", "mode": "edit"})
	assert.Equal(t, command.Context{"dirty": true, "count": int64(3), "mode": "edit"}, ctx)
}

func TestDemoHandlers(t *testing.T) {
	h := newHarness(t, "memory")
	c := &cli{}
	c.cfg.Schema = filepath.Join(h.dir, "schema.toml")
	c.cfg.Platform = "other"
	c.cfg.Storage.Backend = "memory"
	w, err := c.open()
	require.NoError(t, err)

	d := &demo{}
	handlers := d.handlers(w, func() {})
	assert.Equal(t, command.Handled, handlers["file.open"](nil, nil))
	assert.True(t, d.context().Bool("dirty"))
	assert.Equal(t, "ran Open File", d.status)

	groups := palette.Group(w.commands(c.log), d.context())
	assert.Equal(t, []string{"Edit", "File"}, groups.Names())
}
