package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/input/fuzzy"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

func (c *cli) newBindingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "Show and customize bindings",
	}
	cmd.AddCommand(c.newBindingsShowCmd(), c.newBindingsSetCmd(), c.newBindingsResetCmd())
	return cmd
}

func (c *cli) newBindingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List bindings, marking customized ones with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			overrides := w.store.Overrides()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, row := range config.List(w.store.Get()) {
				mark := " "
				if _, ok := overrides[row.ID]; ok {
					mark = "*"
				}
				category := row.Category
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, category, row.ID, row.Label,
					formatBindings(w.parser, row.Keys, row.Mouse))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) newBindingsSetCmd() *cobra.Command {
	var keys, buttons []string
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Override a command's keys or mouse bindings",
		Long: "Override a command's keys or mouse bindings. A flag that is not given\n" +
			"keeps the schema default; an empty value (--keys=\"\") unbinds.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var o config.Override
			if cmd.Flags().Changed("keys") {
				o.Keys = append([]string{}, keys...)
			}
			if cmd.Flags().Changed("mouse") {
				o.Mouse = append([]string{}, buttons...)
			}
			if o.Keys == nil && o.Mouse == nil {
				return fmt.Errorf("nothing to set: pass --keys and/or --mouse")
			}

			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			if _, ok := w.schema[id]; !ok {
				return unknownCommand(w.schema, id)
			}
			if o.Keys != nil {
				if o.Keys, err = uniqueKeys(w.parser, o.Keys); err != nil {
					return err
				}
			}
			for _, m := range o.Mouse {
				if _, err := mouse.Parse(w.parser, m); err != nil {
					return err
				}
			}
			if err := w.store.SaveOne(id, o); err != nil {
				return err
			}
			c.log.Info("binding saved", "id", id)
			entry := w.store.Get()[id]
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, formatBindings(w.parser, entry.Keys, entry.Mouse))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "key bindings, comma separated")
	cmd.Flags().StringSliceVar(&buttons, "mouse", nil, "mouse bindings, comma separated")
	return cmd
}

func (c *cli) newBindingsResetCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reset [id]",
		Short: "Restore schema defaults for one command or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("pass either an id or --all")
			}

			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			if all {
				if err := w.store.Save(nil); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "all bindings reset")
				return err
			}
			id := args[0]
			if _, ok := w.schema[id]; !ok {
				if _, stale := w.store.Overrides()[id]; !stale {
					return unknownCommand(w.schema, id)
				}
			}
			if err := w.store.Reset(id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", id)
			return err
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "reset every command")
	return cmd
}

// uniqueKeys validates keys and drops spellings of a binding already
// listed, keeping the first.
func uniqueKeys(p key.Parser, keys []string) ([]string, error) {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		canonical, err := p.Normalize(k)
		if err != nil {
			return nil, err
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, k)
	}
	return out, nil
}

// unknownCommand reports id as missing from the schema, suggesting the
// closest IDs it fuzzy-matches.
func unknownCommand(schema config.Schema, id string) error {
	items := make([]fuzzy.Item, 0, len(schema))
	for _, known := range schema.IDs() {
		items = append(items, fuzzy.Item{Text: known})
	}
	ranked := fuzzy.NewMatcher(fuzzy.Options{}).Rank(id, items, 3)
	if len(ranked) == 0 {
		return fmt.Errorf("%w: %q", config.ErrUnknownCommand, id)
	}
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Item.Text
	}
	return fmt.Errorf("%w: %q (did you mean %s?)", config.ErrUnknownCommand, id, strings.Join(names, ", "))
}
