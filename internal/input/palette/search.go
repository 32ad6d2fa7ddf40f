package palette

import (
	"sort"
	"strings"

	"github.com/dshills/keybinds/internal/command"
)

// Scored is a search hit.
type Scored struct {
	// Command is the matched command.
	Command *command.Command

	// Active is the command's activation state for the search context.
	Active bool

	// Score ranks the hit within its activation group.
	Score int

	// Positions holds highlight indices from the matcher, if any.
	Positions []int
}

type searchOptions struct {
	matcher Matcher
}

// Option configures Search.
type Option func(*searchOptions)

// WithMatcher replaces the built-in matcher. The matcher is tried on the
// label, then the ID, then the category (when set); the first success is
// used.
func WithMatcher(m Matcher) Option {
	return func(o *searchOptions) {
		o.matcher = m
	}
}

// Search ranks commands for a palette query.
//
// Commands sharing an ID collapse to the last registration; hidden and
// unbound commands are dropped. Without WithMatcher, matching is
// case-insensitive substring search with three tiers: a label prefix scores
// 3, an ID or category prefix 2, and an occurrence anywhere in label, ID
// or category 1. An empty query is a prefix of everything.
//
// Active commands sort before inactive ones, then by descending score.
// Ties keep registration order.
func Search(cmds []*command.Command, query string, ctx command.Context, opts ...Option) []Scored {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = command.Context{}
	}

	var results []Scored
	for _, cmd := range command.Visible(cmds) {
		var (
			m  Match
			ok bool
		)
		if o.matcher != nil {
			m, ok = matchFields(o.matcher, query, cmd)
		} else {
			m, ok = defaultMatch(query, cmd)
		}
		if !ok {
			continue
		}

		results = append(results, Scored{
			Command:   cmd,
			Active:    command.IsActive(cmd, ctx),
			Score:     m.Score,
			Positions: m.Positions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Active != results[j].Active {
			return results[i].Active
		}
		return results[i].Score > results[j].Score
	})
	return results
}

func matchFields(m Matcher, query string, cmd *command.Command) (Match, bool) {
	if r, ok := m.Match(query, cmd.Label); ok {
		return r, true
	}
	if r, ok := m.Match(query, cmd.ID); ok {
		return r, true
	}
	if cmd.Category != "" {
		return m.Match(query, cmd.Category)
	}
	return Match{}, false
}

func defaultMatch(query string, cmd *command.Command) (Match, bool) {
	q := strings.ToLower(query)
	label := strings.ToLower(cmd.Label)
	id := strings.ToLower(cmd.ID)
	category := strings.ToLower(cmd.Category)

	switch {
	case strings.HasPrefix(label, q):
		return Match{Score: 3}, true
	case strings.HasPrefix(id, q), strings.HasPrefix(category, q):
		return Match{Score: 2}, true
	case strings.Contains(label, q), strings.Contains(id, q), strings.Contains(category, q):
		return Match{Score: 1}, true
	}
	return Match{}, false
}
