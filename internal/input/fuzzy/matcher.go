package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Item represents a searchable item.
type Item struct {
	// Text is the string to match against.
	Text string

	// Data is arbitrary data associated with this item.
	Data any
}

// Result represents a match result with scoring information.
type Result struct {
	// Item is the matched item.
	Item Item

	// Score is the match score (higher is better).
	Score int

	// Matches contains the rune indices of matched characters.
	Matches []int
}

var defaultMatcher = NewMatcher(Options{})

// Match reports whether every rune of query appears in text in order,
// ignoring case. Characters are taken greedily left to right. On success
// it returns the score and the rune indices of the matched characters.
// An empty query matches any text with score 0.
func Match(query, text string) (score int, positions []int, ok bool) {
	return defaultMatcher.Match(query, text)
}

// Options configures a Matcher.
type Options struct {
	// CacheSize is the maximum number of cached (query, text) results.
	// Zero disables caching.
	CacheSize int

	// Scorer overrides the default weights.
	Scorer Scorer
}

// Matcher performs fuzzy subsequence matching. It is safe for concurrent
// use.
type Matcher struct {
	cache  *Cache
	scorer Scorer
}

// NewMatcher creates a matcher.
func NewMatcher(opts Options) *Matcher {
	m := &Matcher{scorer: opts.Scorer}
	if m.scorer == nil {
		m.scorer = DefaultWeights()
	}
	if opts.CacheSize > 0 {
		m.cache = NewCache(opts.CacheSize)
	}
	return m
}

// Match scores text against query. See the package-level Match.
func (m *Matcher) Match(query, text string) (int, []int, bool) {
	if m.cache != nil {
		if hit, ok := m.cache.Get(query, text); ok {
			return hit.score, hit.positions, hit.ok
		}
	}

	score, positions, ok := m.match(query, text)
	if m.cache != nil {
		m.cache.Set(query, text, entry{score: score, positions: positions, ok: ok})
	}
	return score, positions, ok
}

func (m *Matcher) match(query, text string) (int, []int, bool) {
	queryRunes := []rune(query)
	textRunes := []rune(text)
	if len(queryRunes) == 0 {
		return 0, []int{}, true
	}
	if len(textRunes) == 0 {
		return 0, nil, false
	}

	lowerQuery := lowerRunes(queryRunes)
	lowerText := lowerRunes(textRunes)

	matches := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(lowerText) && qi < len(lowerQuery); i++ {
		if lowerText[i] == lowerQuery[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(lowerQuery) {
		return 0, nil, false
	}

	return m.scorer.Score(queryRunes, textRunes, lowerText, matches), matches, true
}

// Rank matches every item against query and returns the matches sorted by
// descending score, then text. limit <= 0 means no limit.
func (m *Matcher) Rank(query string, items []Item, limit int) []Result {
	query = strings.TrimSpace(query)

	results := make([]Result, 0, len(items))
	for _, item := range items {
		if query == "" {
			results = append(results, Result{Item: item})
			continue
		}
		score, matches, ok := m.Match(query, item.Text)
		if !ok {
			continue
		}
		results = append(results, Result{Item: item, Score: score, Matches: matches})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Text < results[j].Item.Text
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// Highlight wraps each matched rune of text with open and close markers.
func Highlight(text string, positions []int, open, close string) string {
	if len(positions) == 0 {
		return text
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, r := range []rune(text) {
		if matched[i] {
			b.WriteString(open)
			b.WriteRune(r)
			b.WriteString(close)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}
