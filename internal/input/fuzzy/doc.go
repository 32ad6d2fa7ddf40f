// Package fuzzy implements the in-order subsequence matcher used by
// command palettes.
//
// Every query rune must appear in the candidate text in order, ignoring
// case; runes are taken greedily left to right. A match scores:
//
//	+2  per matched rune directly after the previous match
//	    (a match at index 0 counts)
//	+3  per matched rune at a word start (index 0, or after ' ', '-', '_')
//	+1  per matched rune whose case equals the query's
//	+round(matched / len(text) * 10)
//
// The matched rune indices are returned for highlighting.
//
//	score, pos, ok := fuzzy.Match("dl", "Delete") // 9, [0 2], true
//
// Matcher adds an optional LRU cache and Rank for ordering many items.
package fuzzy
