package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/palette"
)

var (
	sheetTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	sheetLabelStyle = lipgloss.NewStyle().Width(24)
	sheetKeyStyle   = lipgloss.NewStyle().Bold(true)
	sheetOffStyle   = lipgloss.NewStyle().Faint(true)
	sheetBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1)
)

// renderCheatsheet renders grouped commands as one box per category.
// Inactive commands are dimmed. columns <= 0 stacks the boxes vertically.
func renderCheatsheet(groups palette.Groups, p key.Parser, columns int) string {
	boxes := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{sheetTitleStyle.Render(g.Name)}
		for _, e := range g.Entries {
			lines = append(lines, renderSheetRow(e, p))
		}
		boxes = append(boxes, sheetBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	if columns <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	var rows []string
	for i := 0; i < len(boxes); i += columns {
		end := min(i+columns, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSheetRow(e palette.Entry, p key.Parser) string {
	row := sheetLabelStyle.Render(e.Command.Label) + " " +
		sheetKeyStyle.Render(formatBindings(p, e.Command.Keys, e.Command.Mouse))
	if !e.Active {
		return sheetOffStyle.Render(row)
	}
	return row
}

// plainCheatsheet renders groups without styling, one line per command.
func plainCheatsheet(groups palette.Groups, p key.Parser) []string {
	var lines []string
	for _, g := range groups {
		lines = append(lines, g.Name)
		for _, e := range g.Entries {
			mark := " "
			if !e.Active {
				mark = "-"
			}
			lines = append(lines, fmt.Sprintf(" %s %-22s %s", mark, e.Command.Label,
				formatBindings(p, e.Command.Keys, e.Command.Mouse)))
		}
	}
	return lines
}

func (c *cli) newCheatsheetCmd() *cobra.Command {
	var (
		columns int
		plain   bool
		ctxArgs map[string]string
	)
	cmd := &cobra.Command{
		Use:   "cheatsheet",
		Short: "Print the bindings grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := c.open()
			if err != nil {
				return err
			}
			defer w.close()

			groups := palette.Group(w.commands(c.log), parseContext(ctxArgs))
			out := cmd.OutOrStdout()
			if plain {
				_, err := fmt.Fprintln(out, strings.Join(plainCheatsheet(groups, w.parser), "\n"))
				return err
			}
			_, err = fmt.Fprintln(out, renderCheatsheet(groups, w.parser, columns))
			return err
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 3, "categories per row (0 stacks them)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without borders or styling")
	cmd.Flags().StringToStringVar(&ctxArgs, "ctx", nil, "context values as key=value")
	return cmd
}
