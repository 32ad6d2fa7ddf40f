// Package palette ranks and groups commands for command palettes and
// cheatsheets.
//
// Search scores each visible command against a query and orders active
// commands first. Group partitions the same set by category. Neither
// renders anything; callers format the results.
//
//	hits := palette.Search(cmds, "del", ctx)
//	hits = palette.Search(cmds, "dl", ctx, palette.WithMatcher(palette.FuzzyMatcher{}))
//	for _, cat := range palette.Group(cmds, ctx) {
//	    fmt.Println(cat.Name, len(cat.Entries))
//	}
package palette
