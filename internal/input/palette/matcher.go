package palette

import (
	"strings"

	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/dshills/keybinds/internal/input/fuzzy"
)

// Match is a successful match of a query against one text field.
type Match struct {
	// Score ranks the match; higher is better.
	Score int

	// Positions holds matched character indices for highlighting. It may
	// be nil.
	Positions []int
}

// Matcher scores a query against a single text field.
type Matcher interface {
	Match(query, text string) (Match, bool)
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(query, text string) (Match, bool)

// Match implements Matcher.
func (f MatcherFunc) Match(query, text string) (Match, bool) {
	return f(query, text)
}

// SubstringMatcher matches case-insensitively: a prefix scores 2, any
// other occurrence scores 1.
var SubstringMatcher = MatcherFunc(func(query, text string) (Match, bool) {
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	switch {
	case strings.HasPrefix(t, q):
		return Match{Score: 2}, true
	case strings.Contains(t, q):
		return Match{Score: 1}, true
	}
	return Match{}, false
})

// FuzzyMatcher matches in-order subsequences and reports highlight
// positions. The zero value uses fuzzy.Match directly.
type FuzzyMatcher struct {
	// Matcher, when set, is used instead of the package default, e.g. to
	// share a result cache across searches.
	Matcher *fuzzy.Matcher
}

// Match implements Matcher.
func (m FuzzyMatcher) Match(query, text string) (Match, bool) {
	var (
		score     int
		positions []int
		ok        bool
	)
	if m.Matcher != nil {
		score, positions, ok = m.Matcher.Match(query, text)
	} else {
		score, positions, ok = fuzzy.Match(query, text)
	}
	if !ok {
		return Match{}, false
	}
	return Match{Score: score, Positions: positions}, true
}

// SahilmMatcher delegates to github.com/sahilm/fuzzy, whose scoring
// favors matches after separators and camelCase humps. Positions are the
// library's matched indexes.
type SahilmMatcher struct{}

// Match implements Matcher.
func (SahilmMatcher) Match(query, text string) (Match, bool) {
	if query == "" {
		return Match{}, true
	}
	found := sfuzzy.Find(query, []string{text})
	if len(found) == 0 {
		return Match{}, false
	}
	return Match{Score: found[0].Score, Positions: found[0].MatchedIndexes}, true
}
