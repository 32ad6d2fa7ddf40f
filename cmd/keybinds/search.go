package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keybinds/internal/input/fuzzy"
	"github.com/dshills/keybinds/internal/input/palette"
)

func (c *cli) newSearchCmd() *cobra.Command {
	var (
		matcher string
		limit   int
		ctxArgs map[string]string
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank commands for a palette query",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			var opts []palette.Option
			switch matcher {
			case "substring", "":
			case "fuzzy":
				opts = append(opts, palette.WithMatcher(palette.FuzzyMatcher{}))
			case "sahilm":
				opts = append(opts, palette.WithMatcher(palette.SahilmMatcher{}))
			default:
				return fmt.Errorf("unknown matcher %q (expected substring, fuzzy or sahilm)", matcher)
			}

			query := strings.Join(args, " ")
			results := palette.Search(w.commands(c.log), query, parseContext(ctxArgs), opts...)
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				label := r.Command.Label
				if matcher == "fuzzy" {
					if _, pos, ok := fuzzy.Match(query, label); ok {
						label = fuzzy.Highlight(label, pos, "[", "]")
					}
				}
				state := ""
				if !r.Active {
					state = "inactive"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Score, label, r.Command.ID,
					formatBindings(w.parser, r.Command.Keys, r.Command.Mouse), state)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&matcher, "matcher", "substring", "matcher: substring, fuzzy or sahilm")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (0 for all)")
	cmd.Flags().StringToStringVar(&ctxArgs, "ctx", nil, "context values as key=value")
	return cmd
}
