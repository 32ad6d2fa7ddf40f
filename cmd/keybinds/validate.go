package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/input/keymap"
)

func (c *cli) newValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the schema and stored overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			if _, err := config.DefineSchemaWithParser(w.parser, w.store.Get()); err != nil {
				return fmt.Errorf("overrides: %w", err)
			}

			cmds := w.commands(c.log)
			if err := command.ValidateWithParser(w.parser, cmds); err != nil {
				return err
			}
			tables, err := keymap.BuildWithParser(w.parser, cmds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			conflicts := tables.Conflicts()
			lookups := make([]string, 0, len(conflicts))
			for lookup := range conflicts {
				lookups = append(lookups, lookup)
			}
			sort.Strings(lookups)
			for _, lookup := range lookups {
				fmt.Fprintf(out, "shared trigger %s: %s\n", lookup, strings.Join(conflicts[lookup], ", "))
			}

			fmt.Fprintf(out, "ok: %d commands, %d overrides, %d triggers\n",
				len(cmds), len(w.store.Overrides()), len(tables.Lookups()))
			if strict && len(conflicts) > 0 {
				return fmt.Errorf("%d shared triggers", len(conflicts))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when commands share a trigger")
	return cmd
}
